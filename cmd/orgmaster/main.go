package main

import (
	"context"
	"net"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/orgmaster/pkg/api"
	"github.com/platinummonkey/orgmaster/pkg/auth"
	"github.com/platinummonkey/orgmaster/pkg/config"
	"github.com/platinummonkey/orgmaster/pkg/janitor"
	"github.com/platinummonkey/orgmaster/pkg/observability"
	"github.com/platinummonkey/orgmaster/pkg/orgs"
	"github.com/platinummonkey/orgmaster/pkg/partition"
	"github.com/platinummonkey/orgmaster/pkg/storage"
	"github.com/platinummonkey/orgmaster/pkg/storage/cache"
	"github.com/platinummonkey/orgmaster/pkg/storage/postgres"
)

func main() {
	// Bootstrap logger for everything before the structured logger exists
	boot := logrus.New()
	boot.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		boot.WithError(err).Fatal("failed to load configuration")
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.WithField("storage", cfg.Storage.Type).Info("starting orgmaster")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	ctx := context.Background()

	// OpenTelemetry is optional; nil providers mean it is disabled
	otelProviders, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		boot.WithError(err).Fatal("failed to initialize OpenTelemetry")
	}

	store, err := buildStore(ctx, cfg, logger)
	if err != nil {
		boot.WithError(err).Fatal("failed to initialize storage")
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	partitions := partition.NewManager(store, logger)
	orgService := orgs.NewService(store, partitions, hasher, logger, metrics)
	authService := auth.NewService(store, hasher, issuer, logger)

	server := api.NewServer(orgService, authService, logger, metrics)

	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	opsServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.OpsPort),
		Handler:      api.NewOpsMux(store, registry, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	var sweeper *janitor.Janitor
	if cfg.Janitor.Enabled {
		sweeper = janitor.New(store, cfg.Janitor.Schedule, logger, metrics)
		if err := sweeper.Start(); err != nil {
			boot.WithError(err).Fatal("failed to start janitor")
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", apiServer.Addr).Info("API server listening")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.WithField("addr", opsServer.Addr).Info("ops server listening")
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	shutdown := observability.NewShutdownManager(logger, apiServer, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return opsServer.Shutdown(ctx)
	})
	if sweeper != nil {
		shutdown.RegisterShutdownFunc(sweeper.Stop)
	}
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return store.Close()
	})
	if otelProviders != nil {
		shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
			return observability.ShutdownOTel(ctx, otelProviders, logger)
		})
	}

	if err := shutdown.WaitForShutdown(); err != nil {
		logger.WithError(err).Error("shutdown finished with errors")
	}

	if err := g.Wait(); err != nil {
		boot.WithError(err).Fatal("server failed")
	}
}

// buildStore selects the configured backend and optionally wraps it with
// the caching decorator.
func buildStore(ctx context.Context, cfg *config.Config, logger *observability.Logger) (orgs.Store, error) {
	var store orgs.Store
	var err error

	switch cfg.Storage.Type {
	case "postgres":
		store, err = postgres.NewPostgresStore(cfg.Storage)
		if err != nil {
			return nil, err
		}
	default:
		store = storage.NewMemoryStore()
	}

	if cfg.Storage.CacheEnabled {
		cached, err := cache.New(store, cfg.Storage, logger)
		if err != nil {
			store.Close()
			return nil, err
		}
		store = cached
	}

	return store, nil
}
