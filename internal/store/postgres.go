package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures the PostgresStore.
type PostgresOption func(*pgxpool.Config)

// WithPoolSize sets the maximum number of pooled connections.
func WithPoolSize(n int) PostgresOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = int32(n) //nolint:gosec // pool size comes from validated config
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string, opts ...PostgresOption) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return runMigrations(ctx, s, "migrations/postgres")
}

func (s *PostgresStore) ensureMigrationsTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func (s *PostgresStore) migrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)",
		version,
	).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) applyMigration(ctx context.Context, version, sql string) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, sql); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version)
		return err
	})
}

// CommitCycle implements Store.
func (s *PostgresStore) CommitCycle(
	ctx context.Context,
	records []domain.PriceRecord,
	state *domain.NotificationState,
) error {
	ids := make([]int64, len(records))
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for i := range records {
			args := pgx.NamedArgs(priceRecordArgs(&records[i]))
			if err := tx.QueryRow(ctx, queryInsertPriceRecord, args).Scan(&ids[i]); err != nil {
				return fmt.Errorf("inserting price record: %w", err)
			}
		}
		if state != nil {
			args := pgx.NamedArgs(notificationStateArgs(state))
			if _, err := tx.Exec(ctx, queryUpsertNotificationState, args); err != nil {
				return fmt.Errorf("upserting notification state: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("committing cycle: %w", err)
	}

	for i := range records {
		records[i].ID = ids[i]
	}
	return nil
}

// ListHistory queries price history with optional filters, returning results
// and total count.
func (s *PostgresStore) ListHistory(
	ctx context.Context,
	q *HistoryQuery,
) ([]domain.PriceRecord, int, error) {
	dataSQL, countSQL, args := q.ToSQL(dollarPlaceholder)

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting history: %w", err)
	}

	records, err := s.queryRecords(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing history: %w", err)
	}
	return records, total, nil
}

// LatestBestOffers implements Store.
func (s *PostgresStore) LatestBestOffers(ctx context.Context) ([]domain.PriceRecord, error) {
	records, err := s.queryRecords(ctx, queryLatestBestOffers)
	if err != nil {
		return nil, fmt.Errorf("listing latest best offers: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) queryRecords(ctx context.Context, sql string, args ...any) ([]domain.PriceRecord, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PriceRecord
	for rows.Next() {
		var r domain.PriceRecord
		if err := scanPriceRecord(rows, &r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LastNotificationState implements Store.
func (s *PostgresStore) LastNotificationState(
	ctx context.Context,
	productName string,
) (*domain.NotificationState, error) {
	st := &domain.NotificationState{}
	err := scanNotificationState(
		s.pool.QueryRow(ctx, queryGetNotificationState, pgx.NamedArgs{"product_name": productName}),
		st,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting notification state: %w", err)
	}
	return st, nil
}

// ListNotificationStates implements Store.
func (s *PostgresStore) ListNotificationStates(ctx context.Context) ([]domain.NotificationState, error) {
	rows, err := s.pool.Query(ctx, queryListNotificationStates)
	if err != nil {
		return nil, fmt.Errorf("listing notification states: %w", err)
	}
	defer rows.Close()

	var out []domain.NotificationState
	for rows.Next() {
		var st domain.NotificationState
		if err := scanNotificationState(rows, &st); err != nil {
			return nil, fmt.Errorf("scanning notification state: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
