package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
)

// DefaultDurable names the consumer used by the cache warmer.
const DefaultDurable = "overlay-warmer"

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn    *nats.Conn
	js      nats.JetStreamContext
	durable string
	subs    []*nats.Subscription
}

// NewSubscriber connects to NATS for a durable consumer and ensures the
// overlay stream exists, so the warmer can start before any publisher.
// An empty durable name selects DefaultDurable.
func NewSubscriber(url, durable string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	if err := EnsureStream(js); err != nil {
		conn.Close()
		return nil, err
	}
	if durable == "" {
		durable = DefaultDurable
	}
	return &Subscriber{conn: conn, js: js, durable: durable}, nil
}

// SubscribeOverlayEvents delivers every overlay.translated event to handler.
// A handler error naks the message for redelivery, at most three attempts.
func (s *Subscriber) SubscribeOverlayEvents(ctx context.Context, handler func(ctx context.Context, event *domain.OverlayEvent) error) error {
	sub, err := s.js.Subscribe(domain.EventOverlayTranslated, func(msg *nats.Msg) {
		var event domain.OverlayEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			slog.Warn("drop malformed overlay event", "subject", msg.Subject, "error", err)
			_ = msg.Term()
			return
		}
		if err := handler(ctx, &event); err != nil {
			slog.Warn("overlay event handler failed", "id", event.ID, "error", err)
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(s.durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
		nats.DeliverNew(),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
