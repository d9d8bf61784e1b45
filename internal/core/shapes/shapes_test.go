package shapes_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/shapes"
	"github.com/samirrijal/lhcoverlay/internal/core/translator"
	"github.com/samirrijal/lhcoverlay/internal/pkg/geospatial"
	"github.com/samirrijal/lhcoverlay/internal/pkg/projection"
)

var locations = []struct {
	name string
	ref  domain.GeoPoint
}{
	{"CERN", domain.GeoPoint{Lat: 46.233, Lng: 6.05}},
	{"North Cape", domain.GeoPoint{Lat: 71.1725, Lng: 25.7844}},
	{"Quito", domain.GeoPoint{Lat: -0.1807, Lng: -78.4678}},
	{"Invercargill", domain.GeoPoint{Lat: -46.4, Lng: 168.35}},
}

func newTranslator() *translator.Translator {
	return translator.New(projection.NewUTM())
}

func TestCircular_TranslatedShape(t *testing.T) {
	tr := newTranslator()
	c := shapes.NewCircular("Super Proton Synchrotron", domain.GeoPoint{Lat: 46.2447, Lng: 6.056}, 1100, nil, "")

	for _, loc := range locations {
		t.Run(loc.name, func(t *testing.T) {
			s, err := c.TranslatedShape(tr, loc.ref, 45)
			require.NoError(t, err)
			require.NotNil(t, s.Center)
			assert.Equal(t, loc.ref, *s.Center)
			assert.Equal(t, 1100.0, s.Radius)
			assert.Equal(t, domain.ShapeCircle, s.Kind)
			assert.Equal(t, "accelerator accelerator-circle super-proton-synchrotron accelerator-part", s.ClassName)
			assert.Empty(t, s.Path)
		})
	}
}

func TestCircular_DegenerateRadius(t *testing.T) {
	c := shapes.NewCircular("Zero", domain.GeoPoint{}, -5, nil, "")
	s, err := c.TranslatedShape(newTranslator(), domain.GeoPoint{Lat: 1, Lng: 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, -5.0, s.Radius)
}

// Rigid translation keeps planar distances in the shared zone. Ground
// distances drift with the UTM scale factor as the reference moves relative
// to the central meridian, so they are not compared here.
func TestCircular_POIsKeepRadialDistance(t *testing.T) {
	tr := newTranslator()
	center := domain.GeoPoint{Lat: 46.2725593743487, Lng: 6.065987083678201}
	atlas := domain.POI{Name: "ATLAS", Position: domain.GeoPoint{Lat: 46.23497502511518, Lng: 6.0536309870679235}}
	c := shapes.NewCircular("Large Hadron Collider", center, 4300, []domain.POI{atlas}, "")

	ref := domain.GeoPoint{Lat: 46.5, Lng: 7.5}
	pois, err := c.TranslatedPointsOfInterest(tr, ref)
	require.NoError(t, err)
	require.Len(t, pois, 1)

	proj := projection.NewUTM()
	zone := projection.ResolveZone(ref)
	planar := func(p domain.GeoPoint) domain.PlanarPoint {
		pt, err := proj.Forward(p, zone)
		require.NoError(t, err)
		return pt
	}
	dist := func(a, b domain.PlanarPoint) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

	before := dist(planar(center), planar(atlas.Position))
	after := dist(planar(ref), planar(pois[0].Position))
	assert.InDelta(t, before, after, 0.01)
	assert.InDelta(t, 4290.6, geospatial.Distance(center, atlas.Position), 0.1)
}

func TestLinear_Endpoints(t *testing.T) {
	tr := newTranslator()
	l := shapes.NewLinear("LINAC4", domain.GeoPoint{Lat: 46.23121030223552, Lng: 6.046594519834996}, 78, -12, nil, "#FF0000")

	for _, loc := range locations {
		t.Run(loc.name, func(t *testing.T) {
			s, err := l.TranslatedShape(tr, loc.ref, 0)
			require.NoError(t, err)
			require.Len(t, s.Path, 2)
			assert.Equal(t, domain.ShapePolyline, s.Kind)
			assert.Equal(t, "#FF0000", s.Color)

			zone, anchor, err := tr.Anchor(loc.ref)
			require.NoError(t, err)
			a, err := tr.Projector().Forward(s.Path[0], zone)
			require.NoError(t, err)
			b, err := tr.Projector().Forward(s.Path[1], zone)
			require.NoError(t, err)

			assert.InDelta(t, 78.0, math.Hypot(b.X-a.X, b.Y-a.Y), 1e-6)
			assert.InDelta(t, anchor.X, (a.X+b.X)/2, 1e-6)
			assert.InDelta(t, anchor.Y, (a.Y+b.Y)/2, 1e-6)
			assert.InDelta(t, -12.0, math.Atan2(b.X-a.X, b.Y-a.Y)*180/math.Pi, 1e-6)
		})
	}
}

func TestLinear_RotationAddsToDirection(t *testing.T) {
	tr := newTranslator()
	ref := domain.GeoPoint{Lat: 46.233, Lng: 6.05}
	l := shapes.NewLinear("LINAC3", ref, 10, 20, nil, "")

	s, err := l.TranslatedShape(tr, ref, 70)
	require.NoError(t, err)

	zone, _, _ := tr.Anchor(ref)
	a, _ := tr.Projector().Forward(s.Path[0], zone)
	b, _ := tr.Projector().Forward(s.Path[1], zone)
	assert.InDelta(t, 90.0, math.Atan2(b.X-a.X, b.Y-a.Y)*180/math.Pi, 1e-6)
	assert.InDelta(t, a.Y, b.Y, 1e-6)
}

func TestLinear_ZeroLength(t *testing.T) {
	tr := newTranslator()
	ref := domain.GeoPoint{Lat: 10, Lng: 10}
	l := shapes.NewLinear("Stub", domain.GeoPoint{}, 0, 0, nil, "")

	s, err := l.TranslatedShape(tr, ref, 0)
	require.NoError(t, err)
	assert.InDelta(t, ref.Lat, s.Path[0].Lat, 1e-7)
	assert.InDelta(t, ref.Lng, s.Path[1].Lng, 1e-7)
}

func TestRoundedRectangle_LocalRing(t *testing.T) {
	r := shapes.NewRoundedRectangle("LEIR", domain.GeoPoint{}, 20, 20, 54, nil, "")
	ring := r.LocalRing()

	require.Len(t, ring, 28)
	// Top-right corner starts straight below its arc center.
	assert.InDelta(t, 7.0, ring[0].X, 1e-12)
	assert.InDelta(t, -10.0, ring[0].Y, 1e-12)
	assert.InDelta(t, 10.0, ring[6].X, 1e-12)
	assert.InDelta(t, -7.0, ring[6].Y, 1e-12)
	// Bottom-left corner ends at the left edge.
	assert.InDelta(t, -10.0, ring[20].X, 1e-12)
	assert.InDelta(t, 7.0, ring[20].Y, 1e-12)

	for _, p := range ring {
		assert.LessOrEqual(t, math.Abs(p.X), 10.0+1e-9)
		assert.LessOrEqual(t, math.Abs(p.Y), 10.0+1e-9)
	}
}

func TestRoundedRectangle_RotationClosure(t *testing.T) {
	r := shapes.NewRoundedRectangle("LEIR", domain.GeoPoint{}, 20, 20, 54, nil, "")
	orig := r.RotatedRing(0)

	ring := r.RotatedRing(0)
	step := math.Pi / 180
	cos, sin := math.Cos(step), math.Sin(step)
	for i := 0; i < 360; i++ {
		for j, p := range ring {
			ring[j] = domain.PlanarPoint{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
		}
	}
	for i := range orig {
		assert.InDelta(t, orig[i].X, ring[i].X, 1e-9)
		assert.InDelta(t, orig[i].Y, ring[i].Y, 1e-9)
	}

	full := r.RotatedRing(360)
	for i := range orig {
		assert.InDelta(t, orig[i].X, full[i].X, 1e-9)
		assert.InDelta(t, orig[i].Y, full[i].Y, 1e-9)
	}
}

// Rotation is clockwise in the y-down local frame, which is counter-clockwise
// once the ring is laid on easting/northing.
func TestRoundedRectangle_RotationDirection(t *testing.T) {
	r := shapes.NewRoundedRectangle("LEIR", domain.GeoPoint{}, 20, 20, 0, nil, "")
	orig := r.RotatedRing(0)
	turned := r.RotatedRing(90)

	// TR corner start (7, -10) in the y-down frame moves to (10, 7).
	assert.InDelta(t, 7.0, orig[0].X, 1e-12)
	assert.InDelta(t, -10.0, orig[0].Y, 1e-12)
	assert.InDelta(t, 10.0, turned[0].X, 1e-9)
	assert.InDelta(t, 7.0, turned[0].Y, 1e-9)

	// (x, y) -> (-y, x): read as easting/northing, north turns to west.
	for i := range orig {
		assert.InDelta(t, -orig[i].Y, turned[i].X, 1e-9)
		assert.InDelta(t, orig[i].X, turned[i].Y, 1e-9)
	}
}

func TestRoundedRectangle_TranslatedShape(t *testing.T) {
	tr := newTranslator()
	r := shapes.NewRoundedRectangle("LEIR", domain.GeoPoint{Lat: 46.231557004669, Lng: 6.047967826365111}, 20, 20, 54, nil, "#ff6b6b")

	for _, loc := range locations {
		t.Run(loc.name, func(t *testing.T) {
			s, err := r.TranslatedShape(tr, loc.ref, 0)
			require.NoError(t, err)
			require.Len(t, s.Path, 28)
			assert.Equal(t, domain.ShapePolygon, s.Kind)
			assert.Equal(t, "accelerator accelerator-rounded-rectangle leir", s.ClassName)

			b := geospatial.BoundsOf(s.Path)
			assert.InDelta(t, loc.ref.Lat, (b.MinLat+b.MaxLat)/2, 0.01)
			assert.InDelta(t, loc.ref.Lng, (b.MinLng+b.MaxLng)/2, 0.01)

			// Every vertex stays within the half-diagonal of the reference.
			for _, p := range s.Path {
				assert.Less(t, geospatial.Distance(loc.ref, p), 10*math.Sqrt2+0.5)
			}
		})
	}
}

func TestRoundedRectangle_FullTurnReturnsToStart(t *testing.T) {
	tr := newTranslator()
	ref := domain.GeoPoint{Lat: 46.233, Lng: 6.05}
	r := shapes.NewRoundedRectangle("LEIR", ref, 20, 20, 54, nil, "")

	a, err := r.TranslatedShape(tr, ref, 0)
	require.NoError(t, err)
	b, err := r.TranslatedShape(tr, ref, 360)
	require.NoError(t, err)
	for i := range a.Path {
		assert.InDelta(t, a.Path[i].Lat, b.Path[i].Lat, 1e-12)
		assert.InDelta(t, a.Path[i].Lng, b.Path[i].Lng, 1e-12)
	}
}

func TestPointsOfInterest_ReturnsCopy(t *testing.T) {
	pois := []domain.POI{{Name: "A", Position: domain.GeoPoint{Lat: 1, Lng: 2}}}
	c := shapes.NewCircular("X", domain.GeoPoint{}, 1, pois, "")

	pois[0].Name = "changed"
	got := c.PointsOfInterest()
	assert.Equal(t, "A", got[0].Name)

	got[0].Name = "changed again"
	assert.Equal(t, "A", c.PointsOfInterest()[0].Name)
}

func TestInfo(t *testing.T) {
	r := shapes.NewRoundedRectangle("LEIR", domain.GeoPoint{Lat: 1, Lng: 2}, 20, 30, 54, nil, "#ff6b6b")
	info := r.Info()
	assert.Equal(t, "LEIR", info.Name)
	assert.Equal(t, domain.ShapePolygon, info.Kind)
	assert.Equal(t, 30.0, info.Height)
	assert.Equal(t, 54.0, info.Rotation)

	l := shapes.NewLinear("LINAC3", domain.GeoPoint{}, 10, 20, nil, "")
	assert.Equal(t, 10.0, l.Info().Length)
	assert.Equal(t, 20.0, l.Info().Direction)
}
