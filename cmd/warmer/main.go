package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	natsadapter "github.com/samirrijal/lhcoverlay/internal/adapters/nats"
	"github.com/samirrijal/lhcoverlay/internal/adapters/valkey"
	"github.com/samirrijal/lhcoverlay/internal/core/domain"
	"github.com/samirrijal/lhcoverlay/internal/core/registry"
	"github.com/samirrijal/lhcoverlay/internal/core/translator"
	"github.com/samirrijal/lhcoverlay/internal/core/usecases"
	"github.com/samirrijal/lhcoverlay/internal/pkg/config"
	"github.com/samirrijal/lhcoverlay/internal/pkg/logging"
	"github.com/samirrijal/lhcoverlay/internal/pkg/projection"
	"github.com/samirrijal/lhcoverlay/internal/pkg/telemetry"
)

// warmTimeout bounds the work done for one event.
const warmTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load("lhcoverlay-warmer")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr, cfg.Telemetry.SampleRatio)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Warming without a cache has nothing to fill.
	cache, err := valkey.New(cfg.Valkey.Addr, valkey.WithPrefix(cfg.Valkey.Prefix), valkey.WithLocalTTL(0))
	if err != nil {
		log.Fatalf("valkey: %v", err)
	}
	defer cache.Close()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL, natsadapter.DefaultDurable)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	// No publisher: warming must not emit the events it consumes.
	svc := usecases.NewAcceleratorService(registry.CERN(), translator.New(projection.NewUTM()), cache, nil, usecases.AcceleratorOptions{
		DefaultNames: registry.ParseNames(cfg.Overlay.DefaultNames),
		CacheTTL:     cfg.Overlay.CacheTTL,
	})

	err = sub.SubscribeOverlayEvents(ctx, func(ctx context.Context, event *domain.OverlayEvent) error {
		wctx, cancel := context.WithTimeout(ctx, warmTimeout)
		defer cancel()

		start := time.Now()
		n, err := svc.Warm(wctx, event.Reference, event.Rotation)
		if err != nil {
			return err
		}
		slog.Info("warmed overlay cache",
			"event", event.ID,
			"zone", event.Zone,
			"accelerators", n,
			"elapsed", time.Since(start).String(),
		)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	slog.Info("overlay warmer started", "durable", natsadapter.DefaultDurable, "subject", domain.EventOverlayTranslated)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("received signal, shutting down warmer", "signal", sig.String())
	cancel()
}
