package usecases

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/ports"
	"github.com/samirrijal/lhcoverlay/internal/pkg/metrics"
	"github.com/samirrijal/lhcoverlay/internal/pkg/projection"
)

var tracer = otel.Tracer("github.com/samirrijal/lhcoverlay/internal/core/usecases")

func newEvent(typ string) *domain.OverlayEvent {
	return &domain.OverlayEvent{
		ID:        uuid.NewString(),
		Type:      typ,
		CreatedAt: time.Now().UTC(),
	}
}

// publish sends event when a publisher is configured. Failures are logged
// and counted, never returned.
func publish(ctx context.Context, pub ports.EventPublisher, event *domain.OverlayEvent) {
	if pub == nil {
		return
	}
	if err := pub.PublishOverlayEvent(ctx, event); err != nil {
		metrics.EventsPublished.WithLabelValues(event.Type, "error").Inc()
		slog.WarnContext(ctx, "publish overlay event failed", "type", event.Type, "id", event.ID, "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues(event.Type, "ok").Inc()
}

// recordError marks span as failed and counts projection failures by op.
func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var perr *projection.ProjectionError
	if errors.As(err, &perr) {
		metrics.ProjectionErrors.WithLabelValues(perr.Op).Inc()
	}
}
