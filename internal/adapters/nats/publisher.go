package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
)

// Stream and subject names.
const (
	StreamName       = "OVERLAY_EVENTS"
	SubjectAll       = "overlay.>"
	SubjectBroadcast = "overlay.broadcast"
)

// Subject returns the subject an event is published on:
// overlay.translated, or overlay.markers.<festival> for marker rings.
func Subject(event *domain.OverlayEvent) string {
	if event.Type == domain.EventMarkersPlaced {
		festival := event.Festival
		if festival == "" {
			festival = "unknown"
		}
		return domain.EventMarkersPlaced + "." + festival
	}
	return event.Type
}

// StreamConfig is the overlay stream definition shared by publishers and
// subscribers, so whichever process starts first creates it the same way.
func StreamConfig() *nats.StreamConfig {
	return &nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectAll},
		Retention: nats.LimitsPolicy,
		MaxAge:    1 * time.Hour,
		Storage:   nats.FileStorage,
	}
}

// streamManager is the part of nats.JetStreamContext used to manage streams.
type streamManager interface {
	AddStream(cfg *nats.StreamConfig, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	UpdateStream(cfg *nats.StreamConfig, opts ...nats.JSOpt) (*nats.StreamInfo, error)
}

// EnsureStream creates the overlay stream, or updates it when it exists.
func EnsureStream(js streamManager) error {
	cfg := StreamConfig()
	if _, err := js.AddStream(cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(cfg); err != nil {
			return fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}
	return nil
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the overlay stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if err := EnsureStream(js); err != nil {
		return nil, err
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishOverlayEvent publishes event to its subject on the overlay stream.
func (p *Publisher) PublishOverlayEvent(ctx context.Context, event *domain.OverlayEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(Subject(event), data, nats.Context(ctx), nats.MsgId(event.ID))
	return err
}

// PublishBroadcast sends data to every WebSocket relay.
func (p *Publisher) PublishBroadcast(ctx context.Context, data []byte) error {
	return p.conn.Publish(SubjectBroadcast, data)
}

// Conn exposes the underlying connection for readiness checks.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("lhcoverlay"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
