package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/lhcoverlay/internal/adapters/valkey"
	"github.com/samirrijal/lhcoverlay/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Accelerators *usecases.AcceleratorService
	Geodesy      *usecases.GeodesyService
	Markers      *usecases.MarkerService
	Location     *usecases.LocationService
	NATS         *nats.Conn
	Cache        *valkey.Cache

	// CircleSegments is the default polygon resolution for circles in
	// GeoJSON output; 0 keeps them as points with a radius property.
	CircleSegments int

	// DefaultRotation applies to overlay and shape requests without ?rotation.
	DefaultRotation float64

	// OpenAPIPath locates the document served under /docs.
	OpenAPIPath string
}
