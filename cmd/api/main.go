package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/dnsprober/internal/bridge"
	"github.com/hamed0406/dnsprober/internal/config"
	"github.com/hamed0406/dnsprober/internal/connectivity"
	"github.com/hamed0406/dnsprober/internal/control"
	"github.com/hamed0406/dnsprober/internal/httpapi"
	apimw "github.com/hamed0406/dnsprober/internal/httpapi/middleware"
	"github.com/hamed0406/dnsprober/internal/logging"
	"github.com/hamed0406/dnsprober/internal/notify"
	"github.com/hamed0406/dnsprober/internal/probe"
	"github.com/hamed0406/dnsprober/internal/registry"
	"github.com/hamed0406/dnsprober/internal/repo"
	"github.com/hamed0406/dnsprober/internal/repo/memory"
	"github.com/hamed0406/dnsprober/internal/repo/postgres"
	"github.com/hamed0406/dnsprober/internal/watch"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := registry.Builtin()
	if cfg.ProvidersFile != "" {
		catalog, err = catalog.WithFile(cfg.ProvidersFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	var client *bridge.Client
	if ch := bridge.NewHTTPChannel(cfg.BridgeURL); ch != nil {
		client = bridge.NewClient(ch)
	}

	strategy := probe.Strategy(cfg.Strategy)
	prober := probe.Prober(&probe.Timeout{
		Inner: probe.ForStrategy(strategy, client, cfg.ProbeTimeout),
		Limit: cfg.ProbeTimeout,
	})
	var proberV6 probe.Prober
	if cfg.BridgeURL != "" {
		proberV6 = &probe.Timeout{
			Inner: probe.ForStrategy(probe.StrategyNativeV6, client, cfg.ProbeTimeout),
			Limit: cfg.ProbeTimeout,
		}
	}

	var history repo.ProbeStore
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		history = pg
	} else {
		history = memory.New()
	}

	var notifier notify.Notifier
	if s := notify.NewSlack(cfg.SlackWebhook); s != nil {
		notifier = notify.Multi{s}
	}

	wd := watch.New(logger, catalog, prober, strategy, history, notifier, watch.Config{
		Interval:        cfg.WatchInterval,
		Timeout:         cfg.ProbeTimeout,
		Concurrency:     4,
		Cooldown:        cfg.AlertCooldown,
		AlertOnRecovery: cfg.AlertOnRecovery,
	})
	go wd.Run(ctx)

	srv := httpapi.NewServer(
		logger,
		prober,
		proberV6,
		strategy,
		connectivity.NewChecker(client, logger),
		control.NewManager(logger, prober, client),
		catalog,
		history,
	)

	keys := apimw.Keys{Public: cfg.PublicAPIKeys, Admin: cfg.AdminAPIKeys}
	router := srv.Router(keys, cfg.AllowedOrigins,
		cfg.PublicRPM, cfg.PublicBurst, cfg.AdminRPM, cfg.AdminBurst)

	httpSrv := &http.Server{Addr: cfg.Addr, Handler: router}
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	logger.Info("api_listen",
		zap.String("addr", cfg.Addr),
		zap.String("strategy", cfg.Strategy),
		zap.Bool("bridge", cfg.BridgeURL != ""),
	)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	case <-ctx.Done():
		// ctx cancellation also stops the watchdog loop.
		logger.Info("api_shutdown")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutCtx); err != nil {
			logger.Warn("shutdown_error", zap.Error(err))
		}
	}
}
