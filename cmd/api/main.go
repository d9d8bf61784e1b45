package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/lhcoverlay/internal/adapters/geoip"
	"github.com/samirrijal/lhcoverlay/internal/adapters/http"
	natsadapter "github.com/samirrijal/lhcoverlay/internal/adapters/nats"
	"github.com/samirrijal/lhcoverlay/internal/adapters/valkey"
	"github.com/samirrijal/lhcoverlay/internal/core/ports"
	"github.com/samirrijal/lhcoverlay/internal/core/registry"
	"github.com/samirrijal/lhcoverlay/internal/core/translator"
	"github.com/samirrijal/lhcoverlay/internal/core/usecases"
	"github.com/samirrijal/lhcoverlay/internal/pkg/config"
	"github.com/samirrijal/lhcoverlay/internal/pkg/logging"
	"github.com/samirrijal/lhcoverlay/internal/pkg/projection"
	"github.com/samirrijal/lhcoverlay/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("lhcoverlay-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr, cfg.Telemetry.SampleRatio)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Optional backends are kept as nil interfaces when unavailable.
	var (
		cacheSvc  ports.CacheService
		publisher ports.EventPublisher
		locator   ports.Locator
		cache     *valkey.Cache
		natsConn  *nats.Conn
	)

	// Cache
	if cfg.Valkey.Enabled {
		cache, err = valkey.New(cfg.Valkey.Addr,
			valkey.WithPrefix(cfg.Valkey.Prefix),
			valkey.WithLocalTTL(time.Duration(cfg.Valkey.LocalTTL)*time.Second),
		)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
			cache = nil
		} else {
			defer cache.Close()
			cacheSvc = cache
		}
	}

	// NATS
	if cfg.NATS.Enabled {
		nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			defer nc.Close()
			publisher = nc
		}

		// Raw NATS connection for WebSocket relay
		if natsConn, err = natsadapter.RawConn(cfg.NATS.URL); err != nil {
			slog.Warn("nats ws conn unavailable", "error", err)
			natsConn = nil
		} else {
			defer natsConn.Close()
		}
	}

	// GeoIP
	if cfg.GeoIP.DatabasePath != "" {
		db, err := geoip.Open(cfg.GeoIP.DatabasePath)
		if err != nil {
			slog.Warn("geoip unavailable", "path", cfg.GeoIP.DatabasePath, "error", err)
		} else {
			defer db.Close()
			locator = db
		}
	}

	// Use cases
	tr := translator.New(projection.NewUTM())
	acceleratorSvc := usecases.NewAcceleratorService(registry.CERN(), tr, cacheSvc, publisher, usecases.AcceleratorOptions{
		DefaultNames: registry.ParseNames(cfg.Overlay.DefaultNames),
		CacheTTL:     cfg.Overlay.CacheTTL,
	})

	deps := &http.Dependencies{
		Accelerators:    acceleratorSvc,
		Geodesy:         usecases.NewGeodesyService(tr),
		Markers:         usecases.NewMarkerService(publisher),
		Location:        usecases.NewLocationService(locator),
		NATS:            natsConn,
		Cache:           cache,
		CircleSegments:  cfg.Overlay.CircleSegments,
		DefaultRotation: cfg.Overlay.DefaultRotation,
		OpenAPIPath:     cfg.Server.OpenAPIPath,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "LHC Overlay API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "accelerators", len(acceleratorSvc.List(ctx)))
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
