package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/lhcoverlay/internal/pkg/metrics"
)

const requestTimeout = 15 * time.Second

// translateSunset is when the /v1/translate alias stops being served.
var translateSunset = time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Trace span, request ID and logger in the request context
	app.Use(RequestContextMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "too many requests, please try again later")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{Path: "/v1/translate", SunsetDate: translateSunset, Alternative: "/v1/overlay"},
	}))

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1
	v1 := app.Group("/v1")
	v1.Get("/accelerators", timeout.NewWithContext(ListAcceleratorsHandler(deps), requestTimeout))
	v1.Get("/accelerators/:key", timeout.NewWithContext(GetAcceleratorHandler(deps), requestTimeout))
	v1.Get("/accelerators/:key/shape", timeout.NewWithContext(AcceleratorShapeHandler(deps), requestTimeout))
	v1.Get("/overlay", timeout.NewWithContext(OverlayHandler(deps), requestTimeout))
	v1.Get("/translate", timeout.NewWithContext(OverlayHandler(deps), requestTimeout))
	v1.Get("/zones", timeout.NewWithContext(ZoneHandler(deps), requestTimeout))
	v1.Get("/project", timeout.NewWithContext(ProjectHandler(deps), requestTimeout))
	v1.Get("/unproject", timeout.NewWithContext(UnprojectHandler(deps), requestTimeout))
	v1.Get("/destination", timeout.NewWithContext(DestinationHandler(deps), requestTimeout))
	v1.Get("/measure", timeout.NewWithContext(MeasureHandler(deps), requestTimeout))
	v1.Get("/festivals", timeout.NewWithContext(ListFestivalsHandler(deps), requestTimeout))
	v1.Get("/detectors", timeout.NewWithContext(ListDetectorsHandler(deps), requestTimeout))
	v1.Get("/markers", timeout.NewWithContext(MarkersHandler(deps), requestTimeout))
	v1.Get("/locate", timeout.NewWithContext(LocateHandler(deps), requestTimeout))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app, deps.OpenAPIPath)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
