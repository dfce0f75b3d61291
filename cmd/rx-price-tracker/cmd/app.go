package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/rx-price-tracker/internal/config"
	"github.com/donaldgifford/rx-price-tracker/internal/engine"
	"github.com/donaldgifford/rx-price-tracker/internal/notify"
	"github.com/donaldgifford/rx-price-tracker/internal/source"
	"github.com/donaldgifford/rx-price-tracker/internal/store"
	"github.com/donaldgifford/rx-price-tracker/internal/telemetry"
	"github.com/donaldgifford/rx-price-tracker/pkg/logger"
)

// app holds the wired dependencies shared by serve and run.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	store    store.Store
	engine   *engine.Engine
	shutdown telemetry.ShutdownFunc
}

// close flushes telemetry and releases the store.
func (a *app) close(ctx context.Context) error {
	a.store.Close()
	return a.shutdown(ctx)
}

// newApp loads the config and wires the store, storefront adapters,
// notifiers, and engine. Migrations run before it returns.
func newApp(ctx context.Context, path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format,
		logger.WithService(cfg.Telemetry.ServiceName, Version),
	)
	slog.SetDefault(log)

	shutdown, err := telemetry.Setup(ctx, &cfg.Telemetry, Version, log)
	if err != nil {
		return nil, fmt.Errorf("setting up telemetry: %w", err)
	}

	s, err := store.Open(ctx, &cfg.Database)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("opening store: %w", err), shutdown(ctx))
	}

	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, errors.Join(fmt.Errorf("running migrations: %w", err), shutdown(ctx))
	}

	adapters, err := source.Registry(cfg, log)
	if err != nil {
		s.Close()
		return nil, errors.Join(fmt.Errorf("building storefront adapters: %w", err), shutdown(ctx))
	}

	notifier, err := notify.FromConfig(&cfg.Notifications, log)
	if err != nil {
		s.Close()
		return nil, errors.Join(fmt.Errorf("configuring notifications: %w", err), shutdown(ctx))
	}

	eng := engine.NewEngine(s, adapters, notifier,
		engine.WithLogger(log),
		engine.WithProducts(cfg.Products),
		engine.WithPostalCode(cfg.PostalCode),
		engine.WithPacing(cfg.Sources.PacingDelay),
	)

	log.Info("rx-price-tracker configured",
		"version", Version,
		"products", len(cfg.Products),
		"storefronts", len(adapters),
		"database", cfg.Database.Driver,
	)

	return &app{
		cfg:      cfg,
		log:      log,
		store:    s,
		engine:   eng,
		shutdown: shutdown,
	}, nil
}
