package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Only set on GET requests
		if c.Method() != fiber.MethodGet {
			return err
		}

		// Don't override if already set
		if existing := string(c.Response().Header.Peek(fiber.HeaderCacheControl)); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10"

		case path == "/metrics":
			ttl = "no-cache"

		case path == "/graphql":
			ttl = "private, max-age=0"

		case path == "/v1/locate":
			ttl = "private, max-age=300" // per client address

		// The catalog and geometry are fixed at build time.
		case strings.HasPrefix(path, "/v1/accelerators"),
			path == "/v1/festivals",
			path == "/v1/detectors",
			path == "/v1/measure",
			path == "/v1/zones",
			path == "/v1/project",
			path == "/v1/unproject",
			path == "/v1/destination":
			ttl = "public, max-age=86400"

		case path == "/v1/overlay" || path == "/v1/translate" || path == "/v1/markers":
			ttl = "public, max-age=3600"

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=300"
		}

		if ttl != "" {
			c.Set(fiber.HeaderCacheControl, ttl)
		}

		return err
	}
}
