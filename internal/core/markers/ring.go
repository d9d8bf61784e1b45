// Package markers lays the LHC detector ring out around a chosen venue.
package markers

import (
	"math"
	"strings"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/pkg/geospatial"
)

// RingRadius is the distance from the venue to the ring center, and from the
// ring center to every detector, in meters.
const RingRadius = 4300.0

var detectors = []domain.Detector{
	{Name: "PT1 - ATLAS", Position: domain.GeoPoint{Lat: 46.23497502511518, Lng: 6.0536309870679235}, Angle: 0},
	{Name: "PT2", Position: domain.GeoPoint{Lat: 46.251544268663615, Lng: 6.021434048433471}, Angle: 45},
	{Name: "PT3", Position: domain.GeoPoint{Lat: 46.277518302316, Lng: 6.012012123858463}, Angle: 88},
	{Name: "PT4", Position: domain.GeoPoint{Lat: 46.30445011831323, Lng: 6.037082600001055}, Angle: 140},
	{Name: "PT5 - CMS", Position: domain.GeoPoint{Lat: 46.31026650910126, Lng: 6.078887140749957}, Angle: 186},
	{Name: "PT6", Position: domain.GeoPoint{Lat: 46.29351162288481, Lng: 6.111756560082773}, Angle: 226},
	{Name: "PT7", Position: domain.GeoPoint{Lat: 46.266418692548335, Lng: 6.115151115340182}, Angle: 269},
	{Name: "PT8", Position: domain.GeoPoint{Lat: 46.2417904558472, Lng: 6.097942093891781}, Angle: 312},
}

var festivals = []domain.Festival{
	newFestival("PT1 - ATLAS", detectors[0].Position, 10, false),
	newFestival("WOMAD", domain.GeoPoint{Lat: 51.602270, Lng: -2.082470}, 0, true),
	newFestival("Latitude", domain.GeoPoint{Lat: 52.335003, Lng: 1.592255}, 0, true),
	newFestival("ROTOTOM Sunsplash", domain.GeoPoint{Lat: 40.048134, Lng: 0.046666}, 0, true),
	newFestival("Sonorama", domain.GeoPoint{Lat: 41.668949, Lng: -3.683864}, 0, true),
}

func newFestival(name string, loc domain.GeoPoint, angle float64, rotate bool) domain.Festival {
	return domain.Festival{Name: name, Slug: domain.Slugify(name), Location: loc, Angle: angle, AllowRotation: rotate}
}

// Detectors returns the LHC access points in ring order.
func Detectors() []domain.Detector {
	out := make([]domain.Detector, len(detectors))
	copy(out, detectors)
	return out
}

// Festivals returns the venues the ring can be centered on.
func Festivals() []domain.Festival {
	out := make([]domain.Festival, len(festivals))
	copy(out, festivals)
	return out
}

// FindFestival matches a festival by name or slug, ignoring case.
func FindFestival(name string) (domain.Festival, bool) {
	name = strings.TrimSpace(name)
	for _, f := range festivals {
		if strings.EqualFold(f.Name, name) || f.Slug == domain.Slugify(name) {
			return f, true
		}
	}
	return domain.Festival{}, false
}

// EffectiveRotation returns rotation when f allows it, else f's fixed angle.
func EffectiveRotation(f domain.Festival, rotation float64) float64 {
	if f.AllowRotation {
		return rotation
	}
	return f.Angle
}

// Place lays the detector ring out so that the first detector sits on the
// festival and the ring center lies RingRadius away along the rotation bearing.
func Place(f domain.Festival, rotation float64) domain.MarkerRing {
	rotation = EffectiveRotation(f, rotation)
	center := geospatial.Destination(f.Location, rotation, RingRadius)

	ring := domain.MarkerRing{
		Festival: f.Name,
		Rotation: rotation,
		Center:   center,
		Radius:   RingRadius,
		Markers:  make([]domain.Marker, len(detectors)),
	}
	for i, d := range detectors {
		angle := math.Mod(d.Angle+rotation+180, 360)
		pos := f.Location
		if i > 0 {
			pos = geospatial.Destination(center, angle, RingRadius)
		}
		ring.Markers[i] = domain.Marker{Name: d.Name, Position: pos, Angle: angle}
	}
	return ring
}
