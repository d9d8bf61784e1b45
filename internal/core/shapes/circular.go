package shapes

import (
	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/translator"
)

// Circular is a ring collider described by its center and radius in meters.
type Circular struct {
	base
	radius float64
}

// NewCircular creates a circular accelerator. A non-positive radius is
// accepted and yields a degenerate circle.
func NewCircular(name string, center domain.GeoPoint, radius float64, pois []domain.POI, color string) *Circular {
	return &Circular{base: newBase(name, center, color, pois), radius: radius}
}

func (c *Circular) Kind() domain.ShapeKind { return domain.ShapeCircle }

// Radius returns the ring radius in meters.
func (c *Circular) Radius() float64 { return c.radius }

func (c *Circular) Info() domain.AcceleratorInfo {
	info := c.info(domain.ShapeCircle)
	info.Radius = c.radius
	return info
}

// TranslatedShape centers the circle exactly on reference. The radius is a
// ground distance so it carries over unchanged.
func (c *Circular) TranslatedShape(_ *translator.Translator, reference domain.GeoPoint, _ float64) (domain.TranslatedShape, error) {
	center := reference
	return domain.TranslatedShape{
		Kind:      domain.ShapeCircle,
		Name:      c.name,
		ClassName: domain.ClassName(domain.ShapeCircle, c.name),
		Color:     c.color,
		Center:    &center,
		Radius:    c.radius,
	}, nil
}
