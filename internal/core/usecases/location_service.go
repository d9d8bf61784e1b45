package usecases

import (
	"context"
	"fmt"
	"net"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/ports"
)

// LocationService turns a client address into a reference point.
type LocationService struct {
	locator ports.Locator
}

// NewLocationService creates a new LocationService. A nil locator disables
// lookups.
func NewLocationService(locator ports.Locator) *LocationService {
	return &LocationService{locator: locator}
}

// Enabled reports whether a locator is configured.
func (s *LocationService) Enabled() bool {
	return s != nil && s.locator != nil
}

// Locate resolves ip to its approximate position.
func (s *LocationService) Locate(ctx context.Context, ip string) (domain.GeoPoint, error) {
	if !s.Enabled() {
		return domain.GeoPoint{}, fmt.Errorf("%w: geoip not configured", domain.ErrLocationUnavailable)
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: ip address %q", domain.ErrInvalidInput, ip)
	}
	if parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return domain.GeoPoint{}, fmt.Errorf("%w: %s is not routable", domain.ErrLocationUnavailable, ip)
	}

	p, err := s.locator.Locate(ctx, parsed.String())
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("locate %s: %w", ip, err)
	}
	return p, nil
}
