// Package store defines the datastore abstraction for rx-price-tracker.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"

	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// HistoryQuery defines optional filters for price history queries.
type HistoryQuery struct {
	ProductName *string
	Pharmacy    *string
	RunID       *string
	BestOnly    bool
	Limit       int // default 50
	Offset      int
}

// Store defines all data access operations for rx-price-tracker.
type Store interface {
	// CommitCycle appends one history row per evaluated offer and, when state
	// is non-nil, overwrites the product's notification state. Both happen
	// in one transaction. Record IDs are filled in on success.
	CommitCycle(ctx context.Context, records []domain.PriceRecord, state *domain.NotificationState) error
	ListHistory(ctx context.Context, q *HistoryQuery) ([]domain.PriceRecord, int, error)
	// LatestBestOffers returns the most recent best-offer row per product.
	LatestBestOffers(ctx context.Context) ([]domain.PriceRecord, error)

	// LastNotificationState returns ErrNotFound when the product has never
	// alerted.
	LastNotificationState(ctx context.Context, productName string) (*domain.NotificationState, error)
	ListNotificationStates(ctx context.Context) ([]domain.NotificationState, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
	Close()
}
