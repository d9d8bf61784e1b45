package ports

import (
	"context"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
)

// Projector converts between geographic coordinates and a zone's planar meters.
type Projector interface {
	Forward(p domain.GeoPoint, zone domain.Zone) (domain.PlanarPoint, error)
	Inverse(pt domain.PlanarPoint, zone domain.Zone) (domain.GeoPoint, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishOverlayEvent(ctx context.Context, event *domain.OverlayEvent) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeOverlayEvents(ctx context.Context, handler func(ctx context.Context, event *domain.OverlayEvent) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// Locator resolves a network address to an approximate position.
type Locator interface {
	Locate(ctx context.Context, ip string) (domain.GeoPoint, error)
}
