package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/ports"
	"github.com/samirrijal/lhcoverlay/internal/core/registry"
	"github.com/samirrijal/lhcoverlay/internal/core/shapes"
	"github.com/samirrijal/lhcoverlay/internal/core/translator"
	"github.com/samirrijal/lhcoverlay/internal/pkg/metrics"
	"github.com/samirrijal/lhcoverlay/internal/pkg/projection"
	"github.com/samirrijal/lhcoverlay/internal/pkg/telemetry"
)

// DefaultCacheTTL is used when AcceleratorOptions leaves CacheTTL unset.
const DefaultCacheTTL = 3600

// OverlayRequest asks for a set of accelerators placed at one reference point.
type OverlayRequest struct {
	Reference domain.GeoPoint
	Names     []string
	Rotation  float64
}

// AcceleratorOptions tunes AcceleratorService.
type AcceleratorOptions struct {
	// DefaultNames is used when a request names no accelerator.
	DefaultNames []string
	// CacheTTL is the lifetime of cached shapes in seconds.
	CacheTTL int
}

// AcceleratorService places catalog accelerators at arbitrary reference points.
type AcceleratorService struct {
	registry   *registry.Registry
	translator *translator.Translator
	cache      ports.CacheService
	publisher  ports.EventPublisher
	defaults   []string
	cacheTTL   int
}

// NewAcceleratorService creates a new AcceleratorService. cache and publisher
// may be nil.
func NewAcceleratorService(
	reg *registry.Registry,
	tr *translator.Translator,
	cache ports.CacheService,
	publisher ports.EventPublisher,
	opts AcceleratorOptions,
) *AcceleratorService {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	defaults := opts.DefaultNames
	if len(defaults) == 0 {
		defaults = reg.Keys()
	}
	return &AcceleratorService{
		registry:   reg,
		translator: tr,
		cache:      cache,
		publisher:  publisher,
		defaults:   defaults,
		cacheTTL:   ttl,
	}
}

// List returns every catalog entry.
func (s *AcceleratorService) List(ctx context.Context) []domain.AcceleratorInfo {
	return s.registry.Info()
}

// Get returns one catalog entry by key.
func (s *AcceleratorService) Get(ctx context.Context, key string) (*domain.AcceleratorInfo, error) {
	a, ok := s.registry.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAcceleratorNotFound, key)
	}
	info := a.Info()
	info.Key = strings.ToUpper(strings.TrimSpace(key))
	return &info, nil
}

// Shape places a single accelerator at ref.
func (s *AcceleratorService) Shape(ctx context.Context, key string, ref domain.GeoPoint, rotation float64) (*domain.AcceleratorOverlay, error) {
	ctx, span := tracer.Start(ctx, "AcceleratorService.Shape", trace.WithAttributes(
		attribute.String("accelerator", key),
		attribute.Float64Slice(telemetry.AttrReference, []float64{ref.Lat, ref.Lng}),
		attribute.Float64(telemetry.AttrRotation, rotation),
	))
	defer span.End()

	a, ok := s.registry.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAcceleratorNotFound, key)
	}
	out, err := s.compute(ctx, strings.ToUpper(strings.TrimSpace(key)), a, ref, rotation)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return &out, nil
}

// Overlay places every requested accelerator at the request's reference
// point. Unknown names become warnings; they never fail the request.
func (s *AcceleratorService) Overlay(ctx context.Context, req OverlayRequest) (*domain.Overlay, error) {
	start := time.Now()
	defer func() { metrics.OverlayDuration.Observe(time.Since(start).Seconds()) }()

	names := req.Names
	if len(names) == 0 {
		names = s.defaults
	}
	zone := projection.ResolveZone(req.Reference).String()

	ctx, span := tracer.Start(ctx, "AcceleratorService.Overlay", trace.WithAttributes(
		attribute.Float64Slice(telemetry.AttrReference, []float64{req.Reference.Lat, req.Reference.Lng}),
		attribute.String(telemetry.AttrZone, zone),
		attribute.StringSlice(telemetry.AttrNames, names),
		attribute.Float64(telemetry.AttrRotation, req.Rotation),
	))
	defer span.End()

	entries, warnings := s.registry.Resolve(names)
	for _, w := range warnings {
		metrics.UnknownAccelerators.Inc()
		slog.WarnContext(ctx, "unknown accelerator requested", "name", w.Name)
	}

	overlay := &domain.Overlay{
		Reference:    req.Reference,
		Zone:         zone,
		Rotation:     req.Rotation,
		Accelerators: make([]domain.AcceleratorOverlay, 0, len(entries)),
		Warnings:     warnings,
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		out, err := s.compute(ctx, e.Key, e.Accelerator, req.Reference, req.Rotation)
		if err != nil {
			recordError(span, err)
			return nil, fmt.Errorf("overlay %s: %w", e.Key, err)
		}
		overlay.Accelerators = append(overlay.Accelerators, out)
		keys = append(keys, e.Key)
	}

	event := newEvent(domain.EventOverlayTranslated)
	event.Reference = req.Reference
	event.Zone = zone
	event.Names = keys
	event.Rotation = req.Rotation
	publish(ctx, s.publisher, event)

	return overlay, nil
}

// Warm computes every catalog entry at ref so later overlays are cache hits.
// It returns the number of entries warmed and publishes nothing.
func (s *AcceleratorService) Warm(ctx context.Context, ref domain.GeoPoint, rotation float64) (int, error) {
	ctx, span := tracer.Start(ctx, "AcceleratorService.Warm")
	defer span.End()

	n := 0
	for _, key := range s.registry.Keys() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		a, _ := s.registry.Lookup(key)
		if _, err := s.compute(ctx, key, a, ref, rotation); err != nil {
			recordError(span, err)
			return n, fmt.Errorf("warm %s: %w", key, err)
		}
		n++
	}
	return n, nil
}

// CacheKey returns the key under which one translated accelerator is cached.
// Coordinates and rotation are written in their shortest exact form so two
// distinct requests never share an entry.
func CacheKey(key string, ref domain.GeoPoint, rotation float64) string {
	return "overlay:" + key + ":" + exact(ref.Lat) + ":" + exact(ref.Lng) + ":" + exact(rotation)
}

func exact(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *AcceleratorService) compute(ctx context.Context, key string, a shapes.Accelerator, ref domain.GeoPoint, rotation float64) (domain.AcceleratorOverlay, error) {
	cacheKey := CacheKey(key, ref, rotation)

	// Try cache
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var out domain.AcceleratorOverlay
			if err := json.Unmarshal(data, &out); err == nil {
				metrics.CacheHits.WithLabelValues("overlay").Inc()
				return out, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("overlay").Inc()
	}

	shape, err := a.TranslatedShape(s.translator, ref, rotation)
	if err != nil {
		return domain.AcceleratorOverlay{}, fmt.Errorf("translate shape: %w", err)
	}
	pois, err := a.TranslatedPointsOfInterest(s.translator, ref)
	if err != nil {
		return domain.AcceleratorOverlay{}, fmt.Errorf("translate points of interest: %w", err)
	}
	if pois == nil {
		pois = []domain.POI{}
	}
	out := domain.AcceleratorOverlay{Key: key, Shape: shape, PointsOfInterest: pois}
	metrics.ShapesComputed.WithLabelValues(key, string(shape.Kind)).Inc()

	if s.cache != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL); err != nil {
				slog.DebugContext(ctx, "cache set failed", "key", cacheKey, "error", err)
			}
		}
	}

	return out, nil
}
