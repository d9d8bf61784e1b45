package projection

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
)

const (
	zoneWidth = 6.0

	MinZone = 1
	MaxZone = 60
)

// ResolveZone returns the UTM zone containing p. Longitudes are wrapped into
// [-180, 180) first, so 180° and -180° both land in zone 1. Latitude 0 is
// treated as northern.
func ResolveZone(p domain.GeoPoint) domain.Zone {
	lng := WrapLongitude(p.Lng)
	return domain.Zone{
		Number: int(math.Floor((lng+180)/zoneWidth)) + 1,
		South:  p.Lat < 0,
	}
}

// WrapLongitude maps any longitude into [-180, 180).
func WrapLongitude(lng float64) float64 {
	w := math.Mod(lng+180, 360)
	if w < 0 {
		w += 360
	}
	if w >= 360 {
		w -= 360
	}
	return w - 180
}

// ValidZone reports whether z names one of the 60 UTM bands.
func ValidZone(z domain.Zone) bool {
	return z.Number >= MinZone && z.Number <= MaxZone
}

// ParseZone parses "EPSG:326NN" / "EPSG:327NN" (prefix optional).
func ParseZone(s string) (domain.Zone, error) {
	code := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "EPSG:")
	n, err := strconv.Atoi(code)
	if err != nil {
		return domain.Zone{}, &ProjectionError{Op: "parse", Zone: s, Err: ErrInvalidZone}
	}

	var z domain.Zone
	switch {
	case n > 32600 && n < 32700:
		z = domain.Zone{Number: n - 32600}
	case n > 32700 && n < 32800:
		z = domain.Zone{Number: n - 32700, South: true}
	default:
		return domain.Zone{}, &ProjectionError{Op: "parse", Zone: s, Err: fmt.Errorf("%w: not a UTM code", ErrInvalidZone)}
	}
	if !ValidZone(z) {
		return domain.Zone{}, &ProjectionError{Op: "parse", Zone: s, Err: fmt.Errorf("%w: zone number %d", ErrInvalidZone, z.Number)}
	}
	return z, nil
}
