package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/markers"
	"github.com/samirrijal/lhcoverlay/internal/core/ports"
	"github.com/samirrijal/lhcoverlay/internal/pkg/metrics"
	"github.com/samirrijal/lhcoverlay/internal/pkg/telemetry"
)

// MarkerService places the LHC detector ring around festivals.
type MarkerService struct {
	publisher ports.EventPublisher
}

// NewMarkerService creates a new MarkerService. publisher may be nil.
func NewMarkerService(publisher ports.EventPublisher) *MarkerService {
	return &MarkerService{publisher: publisher}
}

// Festivals lists the venues a ring can be placed around.
func (s *MarkerService) Festivals(ctx context.Context) []domain.Festival {
	return markers.Festivals()
}

// Detectors lists the surveyed access points that make up the ring.
func (s *MarkerService) Detectors(ctx context.Context) []domain.Detector {
	return markers.Detectors()
}

// Ring places the detector ring around the named festival.
func (s *MarkerService) Ring(ctx context.Context, festival string, rotation float64) (*domain.MarkerRing, error) {
	ctx, span := tracer.Start(ctx, "MarkerService.Ring", trace.WithAttributes(
		attribute.String(telemetry.AttrFestival, festival),
		attribute.Float64(telemetry.AttrRotation, rotation),
	))
	defer span.End()

	f, ok := markers.FindFestival(festival)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFestivalNotFound, festival)
	}
	if !f.AllowRotation && rotation != f.Angle {
		slog.DebugContext(ctx, "festival rotation is fixed", "festival", f.Name, "requested", rotation, "angle", f.Angle)
	}

	ring := markers.Place(f, rotation)
	metrics.MarkerRingsComputed.WithLabelValues(f.Slug).Inc()

	event := newEvent(domain.EventMarkersPlaced)
	event.Reference = f.Location
	event.Rotation = ring.Rotation
	event.Festival = f.Slug
	publish(ctx, s.publisher, event)

	return &ring, nil
}
