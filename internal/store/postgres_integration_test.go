//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/rx-price-tracker/internal/store"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

func setupPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("rpt_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr, store.WithPoolSize(4))
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))

	return s
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
	// A second migrate is a no-op.
	require.NoError(t, s.Migrate(context.Background()))
}

func TestPostgresStore_CommitCycle(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := testRecords("run-1", "Dienogeste 2mg", ts)
	records[1].Notified = true
	state := &domain.NotificationState{
		ProductName: "Dienogeste 2mg",
		Pharmacy:    "Drogasil",
		Price:       240,
		NotifiedAt:  ts,
	}

	require.NoError(t, s.CommitCycle(ctx, records, state))
	assert.NotZero(t, records[0].ID)
	assert.NotZero(t, records[1].ID)

	got, total, err := s.ListHistory(ctx, &store.HistoryQuery{BestOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, records[1].ID, got[0].ID)
	assert.True(t, got[0].Notified)
	assert.Equal(t, 84, got[0].KitSize)
	assert.True(t, ts.Equal(got[0].Timestamp))

	prior, err := s.LastNotificationState(ctx, "Dienogeste 2mg")
	require.NoError(t, err)
	assert.Equal(t, "Drogasil", prior.Pharmacy)
	assert.InDelta(t, 240.0, prior.Price, 1e-9)
}

func TestPostgresStore_NotificationState(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		_, err := s.LastNotificationState(ctx, "nonexistent")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("overwrite", func(t *testing.T) {
		first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, s.CommitCycle(ctx, nil, &domain.NotificationState{
			ProductName: "Visanne", Pharmacy: "Drogasil", Price: 80, NotifiedAt: first,
		}))
		require.NoError(t, s.CommitCycle(ctx, nil, &domain.NotificationState{
			ProductName: "Visanne", Pharmacy: "Pague Menos", Price: 70, NotifiedAt: first.Add(time.Hour),
		}))

		got, err := s.LastNotificationState(ctx, "Visanne")
		require.NoError(t, err)
		assert.Equal(t, "Pague Menos", got.Pharmacy)

		states, err := s.ListNotificationStates(ctx)
		require.NoError(t, err)
		assert.Len(t, states, 1)
	})
}

func TestPostgresStore_ListHistory(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.CommitCycle(ctx, testRecords("run-1", "Dienogeste 2mg", ts), nil))
	require.NoError(t, s.CommitCycle(ctx, testRecords("run-2", "Dienogeste 2mg", ts.Add(time.Hour)), nil))

	t.Run("no filters", func(t *testing.T) {
		records, total, err := s.ListHistory(ctx, &store.HistoryQuery{})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Len(t, records, 4)
		assert.Equal(t, "run-2", records[0].RunID)
	})

	t.Run("by pharmacy with limit", func(t *testing.T) {
		records, total, err := s.ListHistory(ctx, &store.HistoryQuery{
			Pharmacy: ptr("Drogasil"),
			Limit:    1,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, records, 1)
	})

	t.Run("latest best", func(t *testing.T) {
		best, err := s.LatestBestOffers(ctx)
		require.NoError(t, err)
		require.Len(t, best, 1)
		assert.Equal(t, "run-2", best[0].RunID)
	})
}
