package store

import (
	"context"
	"fmt"

	"github.com/donaldgifford/rx-price-tracker/internal/config"
)

// Open connects to the store selected by cfg.Driver.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgresStore(ctx, cfg.DSN(), WithPoolSize(cfg.PoolSize))
	case config.DriverSQLite:
		return NewSQLiteStore(ctx, cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
