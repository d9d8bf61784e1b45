package translator

import (
	"fmt"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/ports"
	"github.com/samirrijal/lhcoverlay/internal/pkg/projection"
)

// Translator moves point sets rigidly between geographic locations.
//
// Every operation projects all of its points into the single zone resolved
// from the reference point, so the origin and each point of interest share
// one planar frame.
type Translator struct {
	proj ports.Projector
}

// New creates a Translator backed by proj.
func New(proj ports.Projector) *Translator {
	return &Translator{proj: proj}
}

// Projector exposes the underlying projector.
func (t *Translator) Projector() ports.Projector {
	return t.proj
}

// Anchor resolves the target zone for reference and returns the reference's
// planar position inside it.
func (t *Translator) Anchor(reference domain.GeoPoint) (domain.Zone, domain.PlanarPoint, error) {
	zone := projection.ResolveZone(reference)
	pt, err := t.proj.Forward(reference, zone)
	if err != nil {
		return zone, domain.PlanarPoint{}, fmt.Errorf("anchor reference: %w", err)
	}
	return zone, pt, nil
}

// Unproject converts a planar point in zone back to geographic coordinates.
func (t *Translator) Unproject(zone domain.Zone, pt domain.PlanarPoint) (domain.GeoPoint, error) {
	return t.proj.Inverse(pt, zone)
}

// Translate returns the planar offset that carries origin onto reference.
func (t *Translator) Translate(reference, origin domain.GeoPoint) (domain.Offset, error) {
	zone, ref, err := t.Anchor(reference)
	if err != nil {
		return domain.Offset{}, err
	}
	org, err := t.proj.Forward(origin, zone)
	if err != nil {
		return domain.Offset{}, fmt.Errorf("project origin: %w", err)
	}
	return domain.Offset{DX: ref.X - org.X, DY: ref.Y - org.Y, Zone: zone}, nil
}

// TranslatePoints applies the origin→reference offset to every point of
// interest. The inputs are not modified.
func (t *Translator) TranslatePoints(reference, origin domain.GeoPoint, pois []domain.POI) ([]domain.POI, error) {
	off, err := t.Translate(reference, origin)
	if err != nil {
		return nil, err
	}

	out := make([]domain.POI, len(pois))
	for i, poi := range pois {
		pos, err := t.apply(off, poi.Position)
		if err != nil {
			return nil, fmt.Errorf("translate %q: %w", poi.Name, err)
		}
		out[i] = domain.POI{Name: poi.Name, Position: pos}
	}
	return out, nil
}

func (t *Translator) apply(off domain.Offset, p domain.GeoPoint) (domain.GeoPoint, error) {
	pt, err := t.proj.Forward(p, off.Zone)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	pt.X += off.DX
	pt.Y += off.DY
	return t.proj.Inverse(pt, off.Zone)
}
