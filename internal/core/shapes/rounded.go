package shapes

import (
	"fmt"
	"math"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/translator"
)

const (
	// DefaultCornerRadius is the corner radius of rounded footprints, in meters.
	DefaultCornerRadius = 3.0
	// DefaultStepsPerCorner is the number of segments per rounded corner.
	DefaultStepsPerCorner = 6
)

// RoundedRectangle is a rectangular ring with rounded corners, described by
// its center, size in meters and a fixed rotation in degrees.
type RoundedRectangle struct {
	base
	width, height  float64
	rotation       float64
	cornerRadius   float64
	stepsPerCorner int
}

// NewRoundedRectangle creates a rounded-rectangle accelerator with the default
// corner radius and tessellation.
func NewRoundedRectangle(name string, center domain.GeoPoint, width, height, rotation float64, pois []domain.POI, color string) *RoundedRectangle {
	return &RoundedRectangle{
		base:           newBase(name, center, color, pois),
		width:          width,
		height:         height,
		rotation:       rotation,
		cornerRadius:   DefaultCornerRadius,
		stepsPerCorner: DefaultStepsPerCorner,
	}
}

func (r *RoundedRectangle) Kind() domain.ShapeKind { return domain.ShapePolygon }

func (r *RoundedRectangle) Info() domain.AcceleratorInfo {
	info := r.info(domain.ShapePolygon)
	info.Width = r.width
	info.Height = r.height
	info.Rotation = r.rotation
	return info
}

// LocalRing returns the unrotated outline in meters around the origin,
// corners ordered top-right, bottom-right, bottom-left, top-left.
func (r *RoundedRectangle) LocalRing() []domain.PlanarPoint {
	return roundedRectangle(r.width/2, r.height/2, r.cornerRadius, r.stepsPerCorner)
}

// RotatedRing returns the local outline rotated by the native rotation plus
// extra degrees. LocalRing is laid out y-down (top corners have negative y),
// where the rotation is clockwise. Its vertices are added to northing
// unchanged, so on the map a positive angle turns the outline
// counter-clockwise.
func (r *RoundedRectangle) RotatedRing(extra float64) []domain.PlanarPoint {
	ring := r.LocalRing()
	phi := (r.rotation + extra) * math.Pi / 180
	cos, sin := math.Cos(phi), math.Sin(phi)
	for i, p := range ring {
		ring[i] = domain.PlanarPoint{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
	}
	return ring
}

// TranslatedShape rotates the outline, anchors it on reference in the
// reference's zone and inverse-projects every vertex.
func (r *RoundedRectangle) TranslatedShape(t *translator.Translator, reference domain.GeoPoint, rotation float64) (domain.TranslatedShape, error) {
	zone, anchor, err := t.Anchor(reference)
	if err != nil {
		return domain.TranslatedShape{}, fmt.Errorf("%s: %w", r.name, err)
	}

	ring := r.RotatedRing(rotation)
	path := make([]domain.GeoPoint, len(ring))
	for i, p := range ring {
		path[i], err = t.Unproject(zone, domain.PlanarPoint{X: anchor.X + p.X, Y: anchor.Y + p.Y})
		if err != nil {
			return domain.TranslatedShape{}, fmt.Errorf("%s: %w", r.name, err)
		}
	}

	return domain.TranslatedShape{
		Kind:      domain.ShapePolygon,
		Name:      r.name,
		ClassName: domain.ClassName(domain.ShapePolygon, r.name),
		Color:     r.color,
		Path:      path,
	}, nil
}

func roundedRectangle(hw, hh, radius float64, steps int) []domain.PlanarPoint {
	corners := [4]struct{ cx, cy, start, end float64 }{
		{hw - radius, -hh + radius, -math.Pi / 2, 0},
		{hw - radius, hh - radius, 0, math.Pi / 2},
		{-hw + radius, hh - radius, math.Pi / 2, math.Pi},
		{-hw + radius, -hh + radius, math.Pi, 1.5 * math.Pi},
	}

	points := make([]domain.PlanarPoint, 0, 4*(steps+1))
	for _, c := range corners {
		for i := 0; i <= steps; i++ {
			a := c.start + (c.end-c.start)*float64(i)/float64(steps)
			points = append(points, domain.PlanarPoint{
				X: c.cx + radius*math.Cos(a),
				Y: c.cy + radius*math.Sin(a),
			})
		}
	}
	return points
}
