package shapes

import (
	"fmt"
	"math"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/translator"
)

// Linear is a straight accelerator described by its midpoint, length in
// meters and compass direction (degrees clockwise from north).
type Linear struct {
	base
	length    float64
	direction float64
}

// NewLinear creates a linear accelerator.
func NewLinear(name string, midpoint domain.GeoPoint, length, direction float64, pois []domain.POI, color string) *Linear {
	return &Linear{base: newBase(name, midpoint, color, pois), length: length, direction: direction}
}

func (l *Linear) Kind() domain.ShapeKind { return domain.ShapePolyline }

func (l *Linear) Info() domain.AcceleratorInfo {
	info := l.info(domain.ShapePolyline)
	info.Length = l.length
	info.Direction = l.direction
	return info
}

// TranslatedShape builds both endpoints directly in the reference's planar
// frame instead of translating precomputed endpoints.
func (l *Linear) TranslatedShape(t *translator.Translator, reference domain.GeoPoint, rotation float64) (domain.TranslatedShape, error) {
	zone, anchor, err := t.Anchor(reference)
	if err != nil {
		return domain.TranslatedShape{}, fmt.Errorf("%s: %w", l.name, err)
	}

	theta := (l.direction + rotation) * math.Pi / 180
	half := l.length / 2
	dx, dy := half*math.Sin(theta), half*math.Cos(theta)

	start, err := t.Unproject(zone, domain.PlanarPoint{X: anchor.X - dx, Y: anchor.Y - dy})
	if err != nil {
		return domain.TranslatedShape{}, fmt.Errorf("%s: %w", l.name, err)
	}
	end, err := t.Unproject(zone, domain.PlanarPoint{X: anchor.X + dx, Y: anchor.Y + dy})
	if err != nil {
		return domain.TranslatedShape{}, fmt.Errorf("%s: %w", l.name, err)
	}

	return domain.TranslatedShape{
		Kind:      domain.ShapePolyline,
		Name:      l.name,
		ClassName: domain.ClassName(domain.ShapePolyline, l.name),
		Color:     l.color,
		Path:      []domain.GeoPoint{start, end},
	}, nil
}
