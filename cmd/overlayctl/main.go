// Command overlayctl prints accelerator overlays and detector rings as
// GeoJSON without running the API server.
//
//	overlayctl [-segments N] shape <lat> <lng> [names] [rotation]
//	overlayctl markers <festival> [rotation]
//	overlayctl zone <lat> <lng>
//	overlayctl list
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/lhcoverlay/internal/adapters/http"
	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/registry"
	"github.com/samirrijal/lhcoverlay/internal/core/translator"
	"github.com/samirrijal/lhcoverlay/internal/core/usecases"
	"github.com/samirrijal/lhcoverlay/internal/pkg/logging"
	"github.com/samirrijal/lhcoverlay/internal/pkg/projection"
)

var errUsage = errors.New("usage: overlayctl [-segments N] [-log-level L] shape|markers|zone|list ...")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("overlayctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	segments := fs.Int("segments", 0, "render circles as polygons with this many vertices")
	level := fs.String("log-level", "warn", "log level for diagnostics on stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	slog.SetDefault(slog.New(logging.NewHandler(stderr, *level, "text")))

	if *segments != 0 && (*segments < 3 || *segments > http.MaxCircleSegments) {
		return fmt.Errorf("segments must be 0 or between 3 and %d", http.MaxCircleSegments)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}

	tr := translator.New(projection.NewUTM())
	accelerators := usecases.NewAcceleratorService(registry.CERN(), tr, nil, nil, usecases.AcceleratorOptions{})

	switch cmd, params := rest[0], rest[1:]; cmd {
	case "shape":
		if len(params) < 2 || len(params) > 4 {
			return errUsage
		}
		ref, err := parsePoint(params[0], params[1])
		if err != nil {
			return err
		}
		req := usecases.OverlayRequest{Reference: ref}
		if len(params) > 2 {
			req.Names = registry.ParseNames(params[2])
		}
		if len(params) > 3 {
			if req.Rotation, err = parseFloat("rotation", params[3]); err != nil {
				return err
			}
		}
		overlay, err := accelerators.Overlay(ctx, req)
		if err != nil {
			return err
		}
		return writeGeoJSON(stdout, http.OverlayFeatureCollection(overlay, *segments))

	case "markers":
		if len(params) < 1 || len(params) > 2 {
			return errUsage
		}
		var rotation float64
		if len(params) == 2 {
			var err error
			if rotation, err = parseFloat("rotation", params[1]); err != nil {
				return err
			}
		}
		ring, err := usecases.NewMarkerService(nil).Ring(ctx, params[0], rotation)
		if err != nil {
			return err
		}
		return writeGeoJSON(stdout, http.MarkerFeatureCollection(ring))

	case "zone":
		if len(params) != 2 {
			return errUsage
		}
		p, err := parsePoint(params[0], params[1])
		if err != nil {
			return err
		}
		z := usecases.NewGeodesyService(tr).Zone(p)
		return writeJSON(stdout, http.ZoneInfo{
			Zone:            z.String(),
			EPSG:            z.EPSG(),
			Number:          z.Number,
			South:           z.South,
			CentralMeridian: z.CentralMeridian(),
		})

	case "list":
		return writeJSON(stdout, accelerators.List(ctx))
	}
	return errUsage
}

func parsePoint(lat, lng string) (domain.GeoPoint, error) {
	la, err := parseFloat("lat", lat)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	lo, err := parseFloat("lng", lng)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	if la < -90 || la > 90 {
		return domain.GeoPoint{}, fmt.Errorf("lat must be between -90 and 90, got %g", la)
	}
	return domain.GeoPoint{Lat: la, Lng: lo}, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func writeGeoJSON(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
