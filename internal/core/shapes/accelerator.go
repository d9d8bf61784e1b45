// Package shapes holds the accelerator footprints and the generators that
// place them at an arbitrary reference point.
package shapes

import (
	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/translator"
)

// Accelerator is implemented by the three footprint kinds: Circular, Linear
// and RoundedRectangle. Implementations are immutable and every method is pure.
type Accelerator interface {
	Name() string
	Kind() domain.ShapeKind
	Reference() domain.GeoPoint
	Color() string
	PointsOfInterest() []domain.POI
	Info() domain.AcceleratorInfo

	// TranslatedShape places the footprint at reference. rotation is an
	// extra rotation in degrees added to the native one; circles ignore it.
	// Linear directions turn clockwise from north; rounded rectangles turn
	// clockwise in their y-down local frame.
	TranslatedShape(t *translator.Translator, reference domain.GeoPoint, rotation float64) (domain.TranslatedShape, error)

	// TranslatedPointsOfInterest rigidly moves the POIs so that the native
	// reference lands on reference.
	TranslatedPointsOfInterest(t *translator.Translator, reference domain.GeoPoint) ([]domain.POI, error)
}

// base carries the attributes shared by every footprint.
type base struct {
	name  string
	ref   domain.GeoPoint
	color string
	pois  []domain.POI
}

func (b base) Name() string               { return b.name }
func (b base) Reference() domain.GeoPoint { return b.ref }
func (b base) Color() string              { return b.color }

func (b base) PointsOfInterest() []domain.POI {
	out := make([]domain.POI, len(b.pois))
	copy(out, b.pois)
	return out
}

func (b base) TranslatedPointsOfInterest(t *translator.Translator, reference domain.GeoPoint) ([]domain.POI, error) {
	return t.TranslatePoints(reference, b.ref, b.pois)
}

func (b base) info(kind domain.ShapeKind) domain.AcceleratorInfo {
	return domain.AcceleratorInfo{
		Name:      b.name,
		Kind:      kind,
		Reference: b.ref,
		Color:     b.color,
		POICount:  len(b.pois),
	}
}

func newBase(name string, ref domain.GeoPoint, color string, pois []domain.POI) base {
	cp := make([]domain.POI, len(pois))
	copy(cp, pois)
	return base{name: name, ref: ref, color: color, pois: cp}
}
