package usecases_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/registry"
	"github.com/samirrijal/lhcoverlay/internal/core/translator"
	"github.com/samirrijal/lhcoverlay/internal/core/usecases"
	"github.com/samirrijal/lhcoverlay/internal/pkg/projection"
)

var quito = domain.GeoPoint{Lat: -0.1807, Lng: -78.4678}

func newAcceleratorService(cache *mockCache, pub *mockPublisher, opts usecases.AcceleratorOptions) *usecases.AcceleratorService {
	tr := translator.New(projection.NewUTM())
	// Typed nils must not reach the service as non-nil interfaces.
	switch {
	case cache == nil && pub == nil:
		return usecases.NewAcceleratorService(registry.CERN(), tr, nil, nil, opts)
	case cache == nil:
		return usecases.NewAcceleratorService(registry.CERN(), tr, nil, pub, opts)
	case pub == nil:
		return usecases.NewAcceleratorService(registry.CERN(), tr, cache, nil, opts)
	}
	return usecases.NewAcceleratorService(registry.CERN(), tr, cache, pub, opts)
}

func TestAcceleratorService_List(t *testing.T) {
	svc := newAcceleratorService(nil, nil, usecases.AcceleratorOptions{})

	infos := svc.List(context.Background())
	if len(infos) != 8 {
		t.Fatalf("expected 8 accelerators, got %d", len(infos))
	}
	if infos[0].Key != "LHC" {
		t.Errorf("expected LHC first, got %s", infos[0].Key)
	}
}

func TestAcceleratorService_Get(t *testing.T) {
	svc := newAcceleratorService(nil, nil, usecases.AcceleratorOptions{})

	info, err := svc.Get(context.Background(), "linac4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Key != "LINAC4" || info.Kind != domain.ShapePolyline {
		t.Errorf("unexpected info %+v", info)
	}

	if _, err := svc.Get(context.Background(), "LEP"); !errors.Is(err, domain.ErrAcceleratorNotFound) {
		t.Errorf("expected ErrAcceleratorNotFound, got %v", err)
	}
}

func TestAcceleratorService_Shape(t *testing.T) {
	svc := newAcceleratorService(nil, nil, usecases.AcceleratorOptions{})

	out, err := svc.Shape(context.Background(), "sps", quito, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Key != "SPS" {
		t.Errorf("expected key SPS, got %s", out.Key)
	}
	if out.Shape.Center == nil || *out.Shape.Center != quito {
		t.Errorf("expected circle centered on reference, got %+v", out.Shape.Center)
	}

	if _, err := svc.Shape(context.Background(), "nope", quito, 0); !errors.Is(err, domain.ErrAcceleratorNotFound) {
		t.Errorf("expected ErrAcceleratorNotFound, got %v", err)
	}
}

func TestAcceleratorService_Overlay_Defaults(t *testing.T) {
	svc := newAcceleratorService(nil, nil, usecases.AcceleratorOptions{DefaultNames: []string{"LHC", "SPS"}})

	overlay, err := svc.Overlay(context.Background(), usecases.OverlayRequest{Reference: quito})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overlay.Accelerators) != 2 {
		t.Fatalf("expected 2 accelerators, got %d", len(overlay.Accelerators))
	}
	if overlay.Zone != "EPSG:32717" {
		t.Errorf("expected EPSG:32717, got %s", overlay.Zone)
	}
	if len(overlay.Warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", overlay.Warnings)
	}
}

func TestAcceleratorService_Overlay_UnknownNames(t *testing.T) {
	pub := &mockPublisher{}
	svc := newAcceleratorService(nil, pub, usecases.AcceleratorOptions{})

	overlay, err := svc.Overlay(context.Background(), usecases.OverlayRequest{
		Reference: quito,
		Names:     []string{"LHC", "LEP", "LEIR"},
		Rotation:  15,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overlay.Accelerators) != 2 {
		t.Fatalf("expected 2 accelerators, got %d", len(overlay.Accelerators))
	}
	if len(overlay.Warnings) != 1 || overlay.Warnings[0].Name != "LEP" {
		t.Errorf("expected one warning for LEP, got %+v", overlay.Warnings)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Type != domain.EventOverlayTranslated {
		t.Errorf("unexpected event type %s", ev.Type)
	}
	if ev.ID == "" {
		t.Error("expected event id")
	}
	if len(ev.Names) != 2 || ev.Names[0] != "LHC" || ev.Names[1] != "LEIR" {
		t.Errorf("expected resolved names only, got %v", ev.Names)
	}
	if ev.Rotation != 15 || ev.Reference != quito {
		t.Errorf("unexpected event payload %+v", ev)
	}
}

func TestAcceleratorService_Overlay_AllUnknown(t *testing.T) {
	svc := newAcceleratorService(nil, nil, usecases.AcceleratorOptions{})

	overlay, err := svc.Overlay(context.Background(), usecases.OverlayRequest{Reference: quito, Names: []string{"X"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overlay.Accelerators == nil || len(overlay.Accelerators) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", overlay.Accelerators)
	}
	if len(overlay.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(overlay.Warnings))
	}
}

func TestAcceleratorService_Overlay_PublishErrorIgnored(t *testing.T) {
	pub := &mockPublisher{err: errors.New("nats down")}
	svc := newAcceleratorService(nil, pub, usecases.AcceleratorOptions{})

	if _, err := svc.Overlay(context.Background(), usecases.OverlayRequest{Reference: quito, Names: []string{"PS"}}); err != nil {
		t.Fatalf("publish failure must not fail the overlay: %v", err)
	}
}

func TestAcceleratorService_Overlay_WritesCache(t *testing.T) {
	cache := newMockCache()
	svc := newAcceleratorService(cache, nil, usecases.AcceleratorOptions{CacheTTL: 120})

	if _, err := svc.Overlay(context.Background(), usecases.OverlayRequest{Reference: quito, Names: []string{"LHC"}, Rotation: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key := usecases.CacheKey("LHC", quito, 5)
	if key != "overlay:LHC:-0.1807:-78.4678:5" {
		t.Errorf("unexpected cache key %s", key)
	}
	if _, ok := cache.data[key]; !ok {
		t.Fatalf("expected %s to be cached, have %d keys", key, len(cache.data))
	}
	if cache.ttls[key] != 120 {
		t.Errorf("expected ttl 120, got %d", cache.ttls[key])
	}
}

func TestAcceleratorService_Overlay_ReadsCache(t *testing.T) {
	cache := newMockCache()
	cached := domain.AcceleratorOverlay{
		Key:   "LHC",
		Shape: domain.TranslatedShape{Kind: domain.ShapeCircle, Name: "from cache"},
	}
	data, _ := json.Marshal(cached)
	cache.data[usecases.CacheKey("LHC", quito, 0)] = data

	svc := newAcceleratorService(cache, nil, usecases.AcceleratorOptions{})
	overlay, err := svc.Overlay(context.Background(), usecases.OverlayRequest{Reference: quito, Names: []string{"lhc"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overlay.Accelerators[0].Shape.Name != "from cache" {
		t.Errorf("expected cached shape, got %s", overlay.Accelerators[0].Shape.Name)
	}
}

func TestAcceleratorService_Shape_NearbyReferencesDoNotShareCache(t *testing.T) {
	cache := newMockCache()
	svc := newAcceleratorService(cache, nil, usecases.AcceleratorOptions{})
	ctx := context.Background()

	first := domain.GeoPoint{Lat: 46.1234561, Lng: 6}
	second := domain.GeoPoint{Lat: 46.1234564, Lng: 6}
	if _, err := svc.Shape(ctx, "LHC", first, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := svc.Shape(ctx, "LHC", second, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Shape.Center == nil || *out.Shape.Center != second {
		t.Errorf("requested %+v, got center %+v", second, out.Shape.Center)
	}
	if len(cache.data) != 2 {
		t.Errorf("expected 2 cache entries, got %d", len(cache.data))
	}
}

func TestAcceleratorService_Shape_CloseRotationsDiffer(t *testing.T) {
	svc := newAcceleratorService(newMockCache(), nil, usecases.AcceleratorOptions{})
	ctx := context.Background()

	a, err := svc.Shape(ctx, "LINAC4", quito, 10.001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := svc.Shape(ctx, "LINAC4", quito, 10.004)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usecases.CacheKey("LINAC4", quito, 10.001) == usecases.CacheKey("LINAC4", quito, 10.004) {
		t.Fatal("distinct rotations share a cache key")
	}
	if a.Shape.Path[0] == b.Shape.Path[0] {
		t.Errorf("expected different endpoints for rotations 10.001 and 10.004, both %+v", a.Shape.Path[0])
	}
}

func TestAcceleratorService_Overlay_CacheFailureFallsThrough(t *testing.T) {
	cache := newMockCache()
	cache.getErr = errors.New("valkey down")
	cache.setErr = errors.New("valkey down")
	svc := newAcceleratorService(cache, nil, usecases.AcceleratorOptions{})

	overlay, err := svc.Overlay(context.Background(), usecases.OverlayRequest{Reference: quito, Names: []string{"FCC"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overlay.Accelerators[0].Shape.Radius != 14500 {
		t.Errorf("expected computed FCC shape, got %+v", overlay.Accelerators[0].Shape)
	}
}

func TestAcceleratorService_Warm(t *testing.T) {
	cache := newMockCache()
	pub := &mockPublisher{}
	svc := newAcceleratorService(cache, pub, usecases.AcceleratorOptions{})

	n, err := svc.Warm(context.Background(), quito, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 8 || len(cache.data) != 8 {
		t.Errorf("expected 8 warmed entries, got n=%d cached=%d", n, len(cache.data))
	}
	if len(pub.events) != 0 {
		t.Errorf("warm must not publish, got %d events", len(pub.events))
	}
}

func TestAcceleratorService_Warm_Cancelled(t *testing.T) {
	svc := newAcceleratorService(newMockCache(), nil, usecases.AcceleratorOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := svc.Warm(ctx, quito, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n != 0 {
		t.Errorf("expected nothing warmed, got %d", n)
	}
}
