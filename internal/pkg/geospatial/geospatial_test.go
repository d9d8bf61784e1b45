package geospatial_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/pkg/geospatial"
)

func TestDestination_OneDegreeEast(t *testing.T) {
	got := geospatial.Destination(domain.GeoPoint{Lat: 0, Lng: 0}, 90, 111320)

	assert.InDelta(t, 0.0, got.Lat, 1e-9)
	assert.InDelta(t, 1.0, got.Lng, 1e-4)
}

func TestDestination_MatchesSphericalFormula(t *testing.T) {
	origin := domain.GeoPoint{Lat: 51.602270, Lng: -2.082470}
	bearing, dist := 37.0, 4300.0

	phi1 := origin.Lat * math.Pi / 180
	lambda1 := origin.Lng * math.Pi / 180
	theta := bearing * math.Pi / 180
	delta := dist / 6378137
	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(phi1), math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2))

	got := geospatial.Destination(origin, bearing, dist)
	assert.Equal(t, 180*phi2/math.Pi, got.Lat)
	assert.Equal(t, 180*lambda2/math.Pi, got.Lng)
}

func TestDestination_ZeroDistance(t *testing.T) {
	p := domain.GeoPoint{Lat: 46.233, Lng: 6.05}
	got := geospatial.Destination(p, 123, 0)
	assert.InDelta(t, p.Lat, got.Lat, 1e-12)
	assert.InDelta(t, p.Lng, got.Lng, 1e-12)
}

func TestDistance(t *testing.T) {
	a := domain.GeoPoint{Lat: 46.233, Lng: 6.05}
	b := geospatial.Destination(a, 45, 4300)
	assert.InDelta(t, 4300.0, geospatial.Distance(a, b), 0.01)
	assert.InDelta(t, 45.0, geospatial.Bearing(a, b), 1e-6)
}

func TestBearing_Westward(t *testing.T) {
	a := domain.GeoPoint{Lat: 10, Lng: 10}
	b := geospatial.Destination(a, 270, 1000)
	assert.InDelta(t, 270.0, geospatial.Bearing(a, b), 1e-6)
}

func TestBoundsOf(t *testing.T) {
	b := geospatial.BoundsOf([]domain.GeoPoint{{Lat: 1, Lng: 5}, {Lat: -2, Lng: 7}, {Lat: 0, Lng: 6}})
	assert.Equal(t, domain.Bounds{MinLat: -2, MinLng: 5, MaxLat: 1, MaxLng: 7}, b)
}

func TestBoundingBox(t *testing.T) {
	c := domain.GeoPoint{Lat: 46.2725, Lng: 6.066}
	b := geospatial.BoundingBox(c, 4300)
	assert.Less(t, b.MinLat, c.Lat)
	assert.Greater(t, b.MaxLat, c.Lat)
	assert.Less(t, b.MinLng, c.Lng)
	assert.Greater(t, b.MaxLng, c.Lng)
}

func TestCircleRing(t *testing.T) {
	c := domain.GeoPoint{Lat: 46.2725, Lng: 6.066}
	ring := geospatial.CircleRing(c, 4300, 32)

	assert.Len(t, ring, 33)
	assert.Equal(t, ring[0], ring[len(ring)-1])
	for _, p := range ring {
		assert.InDelta(t, 4300.0, geospatial.Distance(c, p), 0.5)
	}

	assert.Len(t, geospatial.CircleRing(c, 10, 1), 4)
}
