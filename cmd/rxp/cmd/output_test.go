package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/donaldgifford/rx-price-tracker/internal/api/client"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short", in: "Dienogeste", max: 40, want: "Dienogeste"},
		{name: "exact", in: "abcdef", max: 6, want: "abcdef"},
		{name: "long", in: "abcdefghij", max: 6, want: "abc..."},
		{name: "multibyte kept whole", in: "Comprimidos revestidos ação", max: 10, want: "Comprim..."},
		{name: "accent at cut", in: "çãçãçãçã", max: 6, want: "çãç..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncate(tt.in, tt.max))
		})
	}
}

func TestPrintProductsTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printProductsTable(&buf, []apiclient.ProductStatus{
		{
			ProductSpec: domain.ProductSpec{Name: "Dienogeste 2mg", SearchTerm: "dienogeste 2mg", ThresholdPrice: 200},
			State:       "ACTIVE",
		},
		{
			ProductSpec: domain.ProductSpec{Name: "Visanne", SearchTerm: "visanne", ThresholdPrice: 300, SnoozeUntil: "bad"},
			State:       "ACTIVE",
			SnoozeError: "parsing snooze_until",
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "THRESHOLD")
	assert.Contains(t, out, "R$ 200.00")
	assert.Contains(t, out, "bad (invalid)")
}

func TestPrintHistoryTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printHistoryTable(&buf, []domain.PriceRecord{{
		Timestamp:           time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		ProductName:         "Dienogeste 2mg",
		Pharmacy:            "Drogasil",
		OfferTitle:          "Dienogeste 2mg 84 comprimidos",
		TotalPrice:          168,
		TotalEffectivePrice: 2,
		KitSize:             84,
		IsBestOffer:         true,
	}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Drogasil")
	assert.Contains(t, out, "R$ 168.00")
	assert.Contains(t, out, "R$ 2.0000")
	assert.Contains(t, out, "yes")
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, &domain.CycleSummary{
		RunID:             "run-1",
		ProductsEvaluated: 2,
		AlertsSent:        1,
		Duration:          1500 * time.Millisecond,
	}))

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "1.5s")
}
