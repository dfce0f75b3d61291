package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Registers the "sqlite3" database/sql driver.
	_ "github.com/mattn/go-sqlite3"

	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// SQLiteStore implements Store on a single SQLite file. It is the default
// for local runs where no Postgres server is available.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the SQLite database at dsn.
func NewSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// SQLite serializes writers; one connection avoids SQLITE_BUSY between
	// pooled connections of the same process.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}

// Ping verifies the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return runMigrations(ctx, s, "migrations/sqlite")
}

func (s *SQLiteStore) ensureMigrationsTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func (s *SQLiteStore) migrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)",
		version,
	).Scan(&exists)
	return exists, err
}

func (s *SQLiteStore) applyMigration(ctx context.Context, version, migration string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, migration); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version)
		return err
	})
}

// inTx runs fn in a transaction, committing on success and rolling back on
// error.
func (s *SQLiteStore) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
		return err
	}
	return tx.Commit()
}

func namedArgs(m map[string]any) []any {
	args := make([]any, 0, len(m))
	for k, v := range m {
		args = append(args, sql.Named(k, v))
	}
	return args
}

// CommitCycle implements Store.
func (s *SQLiteStore) CommitCycle(
	ctx context.Context,
	records []domain.PriceRecord,
	state *domain.NotificationState,
) error {
	ids := make([]int64, len(records))
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for i := range records {
			args := namedArgs(priceRecordArgs(&records[i]))
			if err := tx.QueryRowContext(ctx, queryInsertPriceRecord, args...).Scan(&ids[i]); err != nil {
				return fmt.Errorf("inserting price record: %w", err)
			}
		}
		if state != nil {
			args := namedArgs(notificationStateArgs(state))
			if _, err := tx.ExecContext(ctx, queryUpsertNotificationState, args...); err != nil {
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
func (s *SQLiteStore) ListHistory(
	ctx context.Context,
	q *HistoryQuery,
) ([]domain.PriceRecord, int, error) {
	dataSQL, countSQL, args := q.ToSQL(questionPlaceholder)

	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting history: %w", err)
	}

	records, err := s.queryRecords(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing history: %w", err)
	}
	return records, total, nil
}

// LatestBestOffers implements Store.
func (s *SQLiteStore) LatestBestOffers(ctx context.Context) ([]domain.PriceRecord, error) {
	records, err := s.queryRecords(ctx, queryLatestBestOffers)
	if err != nil {
		return nil, fmt.Errorf("listing latest best offers: %w", err)
	}
	return records, nil
}

func (s *SQLiteStore) queryRecords(ctx context.Context, query string, args ...any) ([]domain.PriceRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
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
func (s *SQLiteStore) LastNotificationState(
	ctx context.Context,
	productName string,
) (*domain.NotificationState, error) {
	st := &domain.NotificationState{}
	err := scanNotificationState(
		s.db.QueryRowContext(ctx, queryGetNotificationState, sql.Named("product_name", productName)),
		st,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting notification state: %w", err)
	}
	return st, nil
}

// ListNotificationStates implements Store.
func (s *SQLiteStore) ListNotificationStates(ctx context.Context) ([]domain.NotificationState, error) {
	rows, err := s.db.QueryContext(ctx, queryListNotificationStates)
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
