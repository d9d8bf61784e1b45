package geospatial

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
)

// EarthRadius is the sphere radius used by Destination and Distance, in meters.
const EarthRadius = orb.EarthRadius

// ToOrb converts a GeoPoint to an orb point (lng, lat order).
func ToOrb(p domain.GeoPoint) orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// FromOrb converts an orb point back to a GeoPoint.
func FromOrb(p orb.Point) domain.GeoPoint {
	return domain.GeoPoint{Lat: p.Lat(), Lng: p.Lon()}
}

// Destination returns the point reached from origin after travelling
// distance meters along the initial bearing (degrees clockwise from north)
// on a sphere of radius EarthRadius.
func Destination(origin domain.GeoPoint, bearing, distance float64) domain.GeoPoint {
	return FromOrb(geo.PointAtBearingAndDistance(ToOrb(origin), bearing, distance))
}

// Distance returns the haversine great-circle distance in meters.
func Distance(a, b domain.GeoPoint) float64 {
	return geo.DistanceHaversine(ToOrb(a), ToOrb(b))
}

// Bearing returns the initial bearing from a to b in degrees clockwise from
// north, in [0, 360).
func Bearing(a, b domain.GeoPoint) float64 {
	return math.Mod(geo.Bearing(ToOrb(a), ToOrb(b))+360, 360)
}

// BoundsOf returns the bounding box of points.
func BoundsOf(points []domain.GeoPoint) domain.Bounds {
	if len(points) == 0 {
		return domain.Bounds{}
	}
	mp := make(orb.MultiPoint, len(points))
	for i, p := range points {
		mp[i] = ToOrb(p)
	}
	b := mp.Bound()
	return domain.Bounds{MinLat: b.Min.Lat(), MinLng: b.Min.Lon(), MaxLat: b.Max.Lat(), MaxLng: b.Max.Lon()}
}

// BoundingBox returns a box around center padded by radius meters.
func BoundingBox(center domain.GeoPoint, radius float64) domain.Bounds {
	b := geo.NewBoundAroundPoint(ToOrb(center), radius)
	return domain.Bounds{MinLat: b.Min.Lat(), MinLng: b.Min.Lon(), MaxLat: b.Max.Lat(), MaxLng: b.Max.Lon()}
}

// CircleRing approximates a circle of radius meters around center with
// segments points, closing the ring by repeating the first point.
func CircleRing(center domain.GeoPoint, radius float64, segments int) []domain.GeoPoint {
	if segments < 3 {
		segments = 3
	}
	ring := make([]domain.GeoPoint, 0, segments+1)
	step := 360.0 / float64(segments)
	for i := 0; i < segments; i++ {
		ring = append(ring, Destination(center, float64(i)*step, radius))
	}
	return append(ring, ring[0])
}
