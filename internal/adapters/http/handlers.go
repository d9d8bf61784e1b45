package http

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/registry"
	"github.com/samirrijal/lhcoverlay/internal/core/usecases"
	"github.com/samirrijal/lhcoverlay/internal/pkg/projection"
)

// ZoneInfo describes the UTM zone resolved for a point.
type ZoneInfo struct {
	Zone            string  `json:"zone"`
	EPSG            int     `json:"epsg"`
	Number          int     `json:"number"`
	South           bool    `json:"south"`
	CentralMeridian float64 `json:"central_meridian"`
}

// LocateResult is the reference point resolved from a client address.
type LocateResult struct {
	IP       string          `json:"ip"`
	Position domain.GeoPoint `json:"position"`
	Zone     string          `json:"zone"`
}

// ListAcceleratorsHandler returns the accelerator catalog.
func ListAcceleratorsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		infos := deps.Accelerators.List(c.UserContext())

		pg := ParsePagination(c, len(infos))
		start, end := pg.Window()
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: infos[start:end], Pagination: pg})
	}
}

// GetAcceleratorHandler returns one catalog entry.
func GetAcceleratorHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := deps.Accelerators.Get(c.UserContext(), c.Params("key"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(info)
	}
}

// AcceleratorShapeHandler places one accelerator at ?lat&lng.
func AcceleratorShapeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref, err := resolveReference(c, deps)
		if err != nil {
			return serviceError(c, err)
		}
		rotation, err := queryFloat(c, "rotation", deps.DefaultRotation)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		format, segments, err := outputFormat(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		out, err := deps.Accelerators.Shape(c.UserContext(), c.Params("key"), ref, rotation)
		if err != nil {
			return serviceError(c, err)
		}
		if format == "geojson" {
			return sendGeoJSON(c, AcceleratorFeatureCollection(out, segments))
		}
		return c.JSON(out)
	}
}

// OverlayHandler places the named accelerators at a reference point.
// Without lat/lng the reference is located from the client address.
func OverlayHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref, err := resolveReference(c, deps)
		if err != nil {
			return serviceError(c, err)
		}
		rotation, err := queryFloat(c, "rotation", deps.DefaultRotation)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		format, segments, err := outputFormat(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		overlay, err := deps.Accelerators.Overlay(c.UserContext(), usecases.OverlayRequest{
			Reference: ref,
			Names:     registry.ParseNames(c.Query("names")),
			Rotation:  rotation,
		})
		if err != nil {
			return serviceError(c, err)
		}

		c.Set("X-UTM-Zone", overlay.Zone)
		if format == "geojson" {
			return sendGeoJSON(c, OverlayFeatureCollection(overlay, segments))
		}
		return c.JSON(overlay)
	}
}

// ZoneHandler returns the UTM zone containing ?lat&lng.
func ZoneHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := requirePoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		z := deps.Geodesy.Zone(p)
		return c.JSON(ZoneInfo{
			Zone:            z.String(),
			EPSG:            z.EPSG(),
			Number:          z.Number,
			South:           z.South,
			CentralMeridian: z.CentralMeridian(),
		})
	}
}

// ProjectHandler converts ?lat&lng to planar meters, in ?zone or the
// point's own zone.
func ProjectHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := requirePoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		var zone *domain.Zone
		if raw := c.Query("zone"); raw != "" {
			z, err := projection.ParseZone(raw)
			if err != nil {
				return errBadRequest(c, err.Error())
			}
			zone = &z
		}

		pp, err := deps.Geodesy.Project(c.UserContext(), p, zone)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(pp)
	}
}

// UnprojectHandler converts ?x&y in ?zone back to latitude and longitude.
func UnprojectHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		x, err := requireFloat(c, "x")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		y, err := requireFloat(c, "y")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		zone, err := projection.ParseZone(c.Query("zone"))
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		p, err := deps.Geodesy.Unproject(c.UserContext(), domain.PlanarPoint{X: x, Y: y}, zone)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(p)
	}
}

// DestinationHandler walks ?distance meters from ?lat&lng along ?bearing.
func DestinationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := requirePoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		bearing, err := requireFloat(c, "bearing")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		distance, err := requireFloat(c, "distance")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(deps.Geodesy.Destination(p, bearing, distance))
	}
}

// MeasureHandler returns the distance and bearing from ?lat&lng to
// ?to_lat&to_lng.
func MeasureHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := requirePoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		toLat, err := requireFloat(c, "to_lat")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		toLng, err := requireFloat(c, "to_lng")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		if toLat < -90 || toLat > 90 {
			return errBadRequest(c, "to_lat must be between -90 and 90")
		}
		return c.JSON(deps.Geodesy.Measure(from, domain.GeoPoint{Lat: toLat, Lng: toLng}))
	}
}

// ListDetectorsHandler returns the access points of the detector ring.
func ListDetectorsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Markers.Detectors(c.UserContext()))
	}
}

// ListFestivalsHandler returns the venues a detector ring can be placed at.
func ListFestivalsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Markers.Festivals(c.UserContext()))
	}
}

// MarkersHandler places the detector ring around ?festival.
func MarkersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		festival := strings.TrimSpace(c.Query("festival"))
		if festival == "" {
			return errBadRequest(c, "festival query parameter is required")
		}
		rotation, err := queryFloat(c, "rotation", 0)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		format, _, err := outputFormat(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		ring, err := deps.Markers.Ring(c.UserContext(), festival, rotation)
		if err != nil {
			return serviceError(c, err)
		}
		if format == "geojson" {
			return sendGeoJSON(c, MarkerFeatureCollection(ring))
		}
		return c.JSON(ring)
	}
}

// LocateHandler resolves ?ip, or the caller's address, to a position.
func LocateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.Query("ip", c.IP())
		p, err := deps.Location.Locate(c.UserContext(), ip)
		if err != nil {
			return serviceError(c, err)
		}
		c.Set("Cache-Control", "private, max-age=300")
		return c.JSON(LocateResult{IP: ip, Position: p, Zone: projection.ResolveZone(p).String()})
	}
}

// serviceError maps service errors to API errors.
func serviceError(c *fiber.Ctx, err error) error {
	var perr *projection.ProjectionError
	switch {
	case errors.Is(err, domain.ErrAcceleratorNotFound),
		errors.Is(err, domain.ErrFestivalNotFound),
		errors.Is(err, domain.ErrLocationUnavailable):
		return errNotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput), errors.As(err, &perr):
		return errBadRequest(c, err.Error())
	default:
		LoggerFromCtx(c.UserContext()).Error("request failed", "path", c.Path(), "error", err)
		return errInternal(c, "internal server error")
	}
}

// resolveReference reads ?lat&lng, falling back to the client's located
// address when both are absent.
func resolveReference(c *fiber.Ctx, deps *Dependencies) (domain.GeoPoint, error) {
	if c.Query("lat") == "" && c.Query("lng") == "" {
		if !deps.Location.Enabled() {
			return domain.GeoPoint{}, invalid("lat and lng are required")
		}
		c.Set(fiber.HeaderCacheControl, "private, max-age=300")
		return deps.Location.Locate(c.UserContext(), c.IP())
	}
	p, err := requirePoint(c)
	if err != nil {
		return domain.GeoPoint{}, invalid(err.Error())
	}
	return p, nil
}

// requirePoint parses ?lat&lng. Latitude must lie in [-90, 90]; longitude
// is any finite value and is wrapped by the zone resolver.
func requirePoint(c *fiber.Ctx) (domain.GeoPoint, error) {
	lat, err := requireFloat(c, "lat")
	if err != nil {
		return domain.GeoPoint{}, err
	}
	lng, err := requireFloat(c, "lng")
	if err != nil {
		return domain.GeoPoint{}, err
	}
	if lat < -90 || lat > 90 {
		return domain.GeoPoint{}, errors.New("lat must be between -90 and 90")
	}
	return domain.GeoPoint{Lat: lat, Lng: lng}, nil
}

func requireFloat(c *fiber.Ctx, name string) (float64, error) {
	if c.Query(name) == "" {
		return 0, errors.New(name + " query parameter is required")
	}
	return queryFloat(c, name, 0)
}

func queryFloat(c *fiber.Ctx, name string, def float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New(name + " must be a finite number")
	}
	return v, nil
}

// outputFormat reads ?format (json or geojson) and ?segments.
func outputFormat(c *fiber.Ctx, deps *Dependencies) (string, int, error) {
	format := strings.ToLower(c.Query("format", "json"))
	if format != "json" && format != "geojson" {
		return "", 0, errors.New("format must be json or geojson")
	}
	segments := c.QueryInt("segments", deps.CircleSegments)
	if segments < 0 || segments > MaxCircleSegments || (segments > 0 && segments < 3) {
		return "", 0, errors.New("segments must be 0 or between 3 and " + strconv.Itoa(MaxCircleSegments))
	}
	return format, segments, nil
}

func sendGeoJSON(c *fiber.Ctx, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return errInternal(c, "encode geojson")
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(data)
}

func invalid(msg string) error {
	return &inputError{msg: msg}
}

type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }
func (e *inputError) Unwrap() error { return domain.ErrInvalidInput }
