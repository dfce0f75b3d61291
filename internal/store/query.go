package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// placeholder renders the n-th (1-based) positional parameter for a dialect.
type placeholder func(n int) string

func dollarPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

func questionPlaceholder(int) string { return "?" }

const historyColumns = `id, run_id, timestamp, pharmacy, product_name, offer_title, url,
	unit_price, total_price, shipping_cost, total_effective_price,
	is_kit, kit_size, is_best_offer, notified`

const baseHistorySelect = "SELECT " + historyColumns + "\nFROM price_history"

const countHistorySelect = "SELECT COUNT(*) FROM price_history"

// EffectiveLimit returns the page size the query runs with: Limit, or the
// default when unset, capped at maxLimit.
func (q *HistoryQuery) EffectiveLimit() int {
	switch {
	case q.Limit <= 0:
		return defaultLimit
	case q.Limit > maxLimit:
		return maxLimit
	default:
		return q.Limit
	}
}

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a history
// query. It returns two SQL strings (one for the data query, one for the
// count query) and the positional parameters, rendered with ph.
func (q *HistoryQuery) ToSQL(ph placeholder) (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.ProductName != nil {
		conditions = append(conditions, "product_name = "+ph(paramIdx))
		args = append(args, *q.ProductName)
		paramIdx++
	}

	if q.Pharmacy != nil {
		conditions = append(conditions, "pharmacy = "+ph(paramIdx))
		args = append(args, *q.Pharmacy)
		paramIdx++
	}

	if q.RunID != nil {
		conditions = append(conditions, "run_id = "+ph(paramIdx))
		args = append(args, *q.RunID)
	}

	if q.BestOnly {
		conditions = append(conditions, "is_best_offer = TRUE")
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := q.EffectiveLimit()
	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY timestamp DESC, id DESC LIMIT %d OFFSET %d",
		baseHistorySelect, whereClause, limit, offset,
	)

	countSQL = countHistorySelect + whereClause

	return dataSQL, countSQL, args
}
