package usecases

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/translator"
	"github.com/samirrijal/lhcoverlay/internal/pkg/geospatial"
	"github.com/samirrijal/lhcoverlay/internal/pkg/projection"
)

// GeodesyService exposes the zone resolver, projector and forward geodesic.
type GeodesyService struct {
	translator *translator.Translator
}

// NewGeodesyService creates a new GeodesyService.
func NewGeodesyService(tr *translator.Translator) *GeodesyService {
	return &GeodesyService{translator: tr}
}

// Zone returns the UTM zone containing p.
func (s *GeodesyService) Zone(p domain.GeoPoint) domain.Zone {
	return projection.ResolveZone(p)
}

// Project converts p to planar meters. A nil zone means p's own zone.
func (s *GeodesyService) Project(ctx context.Context, p domain.GeoPoint, zone *domain.Zone) (*domain.ProjectedPoint, error) {
	_, span := tracer.Start(ctx, "GeodesyService.Project")
	defer span.End()

	z := projection.ResolveZone(p)
	if zone != nil {
		z = *zone
	}
	pt, err := s.translator.Projector().Forward(p, z)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return &domain.ProjectedPoint{Zone: z.String(), EPSG: z.EPSG(), X: pt.X, Y: pt.Y}, nil
}

// Unproject converts planar meters in zone back to latitude and longitude.
func (s *GeodesyService) Unproject(ctx context.Context, pt domain.PlanarPoint, zone domain.Zone) (domain.GeoPoint, error) {
	_, span := tracer.Start(ctx, "GeodesyService.Unproject", trace.WithAttributes(
		attribute.String("zone", zone.String()),
	))
	defer span.End()

	p, err := s.translator.Unproject(zone, pt)
	if err != nil {
		recordError(span, err)
		return domain.GeoPoint{}, err
	}
	return p, nil
}

// Translate returns the planar offset carrying origin onto reference, in the
// reference's zone.
func (s *GeodesyService) Translate(ctx context.Context, reference, origin domain.GeoPoint) (domain.Offset, error) {
	_, span := tracer.Start(ctx, "GeodesyService.Translate")
	defer span.End()

	off, err := s.translator.Translate(reference, origin)
	if err != nil {
		recordError(span, err)
		return domain.Offset{}, fmt.Errorf("translate: %w", err)
	}
	return off, nil
}

// Measure returns the great-circle distance and initial bearing from one
// point to another, the inverse of Destination.
func (s *GeodesyService) Measure(from, to domain.GeoPoint) domain.Measurement {
	return domain.Measurement{
		From:     from,
		To:       to,
		Distance: geospatial.Distance(from, to),
		Bearing:  geospatial.Bearing(from, to),
	}
}

// Destination walks distance meters from start along bearing on a sphere.
func (s *GeodesyService) Destination(start domain.GeoPoint, bearing, distance float64) domain.GeoPoint {
	return geospatial.Destination(start, bearing, distance)
}
