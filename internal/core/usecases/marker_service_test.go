package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/usecases"
)

func TestMarkerService_Festivals(t *testing.T) {
	svc := usecases.NewMarkerService(nil)
	if got := len(svc.Festivals(context.Background())); got != 5 {
		t.Errorf("expected 5 festivals, got %d", got)
	}
}

func TestMarkerService_Ring(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewMarkerService(pub)

	ring, err := svc.Ring(context.Background(), "womad", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ring.Festival != "WOMAD" || ring.Rotation != 45 {
		t.Errorf("unexpected ring %+v", ring)
	}
	if len(ring.Markers) != 8 {
		t.Fatalf("expected 8 markers, got %d", len(ring.Markers))
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Type != domain.EventMarkersPlaced || ev.Festival != "womad" {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestMarkerService_FixedRotation(t *testing.T) {
	svc := usecases.NewMarkerService(nil)

	ring, err := svc.Ring(context.Background(), "PT1 - ATLAS", 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ring.Rotation != 10 {
		t.Errorf("expected fixed rotation 10, got %f", ring.Rotation)
	}
}

func TestMarkerService_UnknownFestival(t *testing.T) {
	svc := usecases.NewMarkerService(nil)

	if _, err := svc.Ring(context.Background(), "Glastonbury", 0); !errors.Is(err, domain.ErrFestivalNotFound) {
		t.Errorf("expected ErrFestivalNotFound, got %v", err)
	}
}

func TestMarkerService_Detectors(t *testing.T) {
	d := usecases.NewMarkerService(nil).Detectors(context.Background())
	if len(d) != 8 {
		t.Fatalf("expected 8 detectors, got %d", len(d))
	}
	if d[0].Name != "PT1 - ATLAS" {
		t.Errorf("expected ATLAS first, got %s", d[0].Name)
	}
}
