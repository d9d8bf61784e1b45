// Package geoip resolves client addresses to coordinates with a MaxMind
// City database.
package geoip

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/samirrijal/lhcoverlay/internal/core/domain"
)

// ErrNotFound is returned for addresses the database has no location for.
var ErrNotFound = errors.New("address not in geoip database")

// Locator implements ports.Locator.
type Locator struct {
	db *geoip2.Reader
}

// Open loads the database at path.
func Open(path string) (*Locator, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	return &Locator{db: db}, nil
}

// Locate returns the approximate position of ip.
func (l *Locator) Locate(ctx context.Context, ip string) (domain.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return domain.GeoPoint{}, err
	}
	addr := net.ParseIP(ip)
	if addr == nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: ip address %q", domain.ErrInvalidInput, ip)
	}

	record, err := l.db.City(addr)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geoip lookup: %w", err)
	}
	// Missing records decode to the zero value.
	if record.Location.Latitude == 0 && record.Location.Longitude == 0 {
		return domain.GeoPoint{}, fmt.Errorf("%w: %s", ErrNotFound, ip)
	}
	return domain.GeoPoint{Lat: record.Location.Latitude, Lng: record.Location.Longitude}, nil
}

// Close releases the database.
func (l *Locator) Close() error {
	return l.db.Close()
}
