package http

import (
	"context"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const readyTimeout = 3 * time.Second

// notConfigured marks an optional backend that was not wired at startup.
const notConfigured = "not configured"

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()
	version := "dev"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		version = bi.Main.Version
	}
	accelerators := "0"
	if deps.Accelerators != nil {
		accelerators = strconv.Itoa(len(deps.Accelerators.List(context.Background())))
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":       "healthy",
			"uptime":       time.Since(startedAt).Truncate(time.Second).String(),
			"version":      version,
			"accelerators": accelerators,
		})
	}
}

// readinessCheck reports one dependency. ok is false only when the
// dependency is configured and failing.
type readinessCheck struct {
	name  string
	check func(ctx context.Context) (state string, ok bool)
}

func readinessChecks(deps *Dependencies) []readinessCheck {
	return []readinessCheck{
		{"catalog", func(ctx context.Context) (string, bool) {
			if deps.Accelerators == nil || len(deps.Accelerators.List(ctx)) == 0 {
				return "empty", false
			}
			return "ok", true
		}},
		{"nats", func(context.Context) (string, bool) {
			switch {
			case deps.NATS == nil:
				return notConfigured, true
			case !deps.NATS.IsConnected():
				return "disconnected", false
			}
			return "ok", true
		}},
		{"cache", func(ctx context.Context) (string, bool) {
			if deps.Cache == nil {
				return notConfigured, true
			}
			if err := deps.Cache.Ping(ctx); err != nil {
				return "error: " + err.Error(), false
			}
			return "ok", true
		}},
		{"geoip", func(context.Context) (string, bool) {
			if !deps.Location.Enabled() {
				return notConfigured, true
			}
			return "ok", true
		}},
	}
}

// ReadyHandler runs every readiness check. NATS, the cache and GeoIP are
// optional: an unconfigured backend is reported but does not fail readiness.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	checklist := readinessChecks(deps)

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
		defer cancel()

		checks := make(map[string]string, len(checklist))
		ready := true
		for _, p := range checklist {
			state, ok := p.check(ctx)
			checks[p.name] = state
			ready = ready && ok
		}

		if !ready {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready", "checks": checks})
		}
		return c.JSON(fiber.Map{"status": "ready", "checks": checks})
	}
}
