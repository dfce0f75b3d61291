package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestHistoryQuery_ToSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		query         HistoryQuery
		ph            placeholder
		wantCountSQL  string
		wantArgs      []any
		wantDataHas   []string // substrings that must appear in dataSQL
		wantDataNotIn []string // substrings that must NOT appear
	}{
		{
			name:  "empty query uses defaults",
			query: HistoryQuery{},
			ph:    dollarPlaceholder,
			wantDataHas: []string{
				"FROM price_history",
				"ORDER BY timestamp DESC, id DESC",
				"LIMIT 50",
				"OFFSET 0",
			},
			wantDataNotIn: []string{"WHERE"},
			wantCountSQL:  "SELECT COUNT(*) FROM price_history",
			wantArgs:      nil,
		},
		{
			name:         "product filter",
			query:        HistoryQuery{ProductName: ptr("Dienogeste 2mg")},
			ph:           dollarPlaceholder,
			wantDataHas:  []string{"WHERE product_name = $1"},
			wantCountSQL: "SELECT COUNT(*) FROM price_history WHERE product_name = $1",
			wantArgs:     []any{"Dienogeste 2mg"},
		},
		{
			name: "all filters postgres",
			query: HistoryQuery{
				ProductName: ptr("Dienogeste 2mg"),
				Pharmacy:    ptr("Drogasil"),
				RunID:       ptr("run-1"),
				BestOnly:    true,
			},
			ph: dollarPlaceholder,
			wantDataHas: []string{
				"WHERE product_name = $1 AND pharmacy = $2 AND run_id = $3 AND is_best_offer = TRUE",
			},
			wantCountSQL: "SELECT COUNT(*) FROM price_history " +
				"WHERE product_name = $1 AND pharmacy = $2 AND run_id = $3 AND is_best_offer = TRUE",
			wantArgs: []any{"Dienogeste 2mg", "Drogasil", "run-1"},
		},
		{
			name: "all filters sqlite",
			query: HistoryQuery{
				ProductName: ptr("Dienogeste 2mg"),
				Pharmacy:    ptr("Drogasil"),
				BestOnly:    true,
			},
			ph:            questionPlaceholder,
			wantDataHas:   []string{"WHERE product_name = ? AND pharmacy = ? AND is_best_offer = TRUE"},
			wantDataNotIn: []string{"$1"},
			wantCountSQL:  "SELECT COUNT(*) FROM price_history WHERE product_name = ? AND pharmacy = ? AND is_best_offer = TRUE",
			wantArgs:      []any{"Dienogeste 2mg", "Drogasil"},
		},
		{
			name:         "best only needs no args",
			query:        HistoryQuery{BestOnly: true},
			ph:           dollarPlaceholder,
			wantDataHas:  []string{"WHERE is_best_offer = TRUE"},
			wantCountSQL: "SELECT COUNT(*) FROM price_history WHERE is_best_offer = TRUE",
			wantArgs:     nil,
		},
		{
			name:         "limit is capped",
			query:        HistoryQuery{Limit: 10000},
			ph:           dollarPlaceholder,
			wantDataHas:  []string{"LIMIT 500"},
			wantCountSQL: "SELECT COUNT(*) FROM price_history",
		},
		{
			name:         "custom limit and offset",
			query:        HistoryQuery{Limit: 20, Offset: 40},
			ph:           dollarPlaceholder,
			wantDataHas:  []string{"LIMIT 20", "OFFSET 40"},
			wantCountSQL: "SELECT COUNT(*) FROM price_history",
		},
		{
			name:         "negative offset clamped",
			query:        HistoryQuery{Offset: -5},
			ph:           dollarPlaceholder,
			wantDataHas:  []string{"OFFSET 0"},
			wantCountSQL: "SELECT COUNT(*) FROM price_history",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dataSQL, countSQL, args := tt.query.ToSQL(tt.ph)

			for _, s := range tt.wantDataHas {
				assert.Contains(t, dataSQL, s)
			}
			for _, s := range tt.wantDataNotIn {
				assert.NotContains(t, dataSQL, s)
			}
			assert.Equal(t, tt.wantCountSQL, countSQL)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestHistoryQuery_EffectiveLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "unset uses default", limit: 0, want: 50},
		{name: "negative uses default", limit: -3, want: 50},
		{name: "within range kept", limit: 10, want: 10},
		{name: "at cap kept", limit: 500, want: 500},
		{name: "above cap clamped", limit: 1000, want: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := HistoryQuery{Limit: tt.limit}
			assert.Equal(t, tt.want, q.EffectiveLimit())
		})
	}
}
