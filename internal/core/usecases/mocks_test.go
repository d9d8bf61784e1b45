package usecases_test

import (
	"context"
	"errors"
	"sync"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
)

var errMiss = errors.New("cache miss")

// --- Mock CacheService ---

type mockCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]int
	getErr error
	setErr error
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}, ttls: map[string]int{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, errMiss
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttlSeconds
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	mu     sync.Mutex
	events []*domain.OverlayEvent
	err    error
}

func (m *mockPublisher) PublishOverlayEvent(ctx context.Context, event *domain.OverlayEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}

func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error { return m.err }

// --- Mock Locator ---

type mockLocator struct {
	locateFn func(ctx context.Context, ip string) (domain.GeoPoint, error)
}

func (m *mockLocator) Locate(ctx context.Context, ip string) (domain.GeoPoint, error) {
	if m.locateFn != nil {
		return m.locateFn(ctx, ip)
	}
	return domain.GeoPoint{}, nil
}
