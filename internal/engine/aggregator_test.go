package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/rx-price-tracker/internal/source"
	sourceMocks "github.com/donaldgifford/rx-price-tracker/internal/source/mocks"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// fakeAdapter returns canned offers or fails.
type fakeAdapter struct {
	name   string
	offers []domain.Offer
	err    error
	panics bool
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Search(context.Context, string, string) ([]domain.Offer, error) {
	if f.panics {
		panic("unexpected payload shape")
	}
	return f.offers, f.err
}

// quotingAdapter adds a shipping capability to fakeAdapter.
type quotingAdapter struct {
	fakeAdapter
	shipping map[string]float64
	shipErr  error
	quoted   []string
}

func (q *quotingAdapter) ShippingCost(_ context.Context, sku, _ string) (float64, error) {
	q.quoted = append(q.quoted, sku)
	if q.shipErr != nil {
		return 0, q.shipErr
	}
	return q.shipping[sku], nil
}

func TestEvaluateProduct_SelectsLowestEffectiveUnitPrice(t *testing.T) {
	t.Parallel()

	thirty := &quotingAdapter{
		fakeAdapter: fakeAdapter{name: "Pague Menos", offers: []domain.Offer{
			{Title: "Medication 30 comprimidos", SKU: "pm-30", Price: 90, Quantity: 30},
		}},
		shipping: map[string]float64{"pm-30": 10},
	}
	sixty := &fakeAdapter{name: "Drogasil", offers: []domain.Offer{
		{Pharmacy: "Drogasil", Title: "Medication 60 comprimidos", Price: 170, Quantity: 60},
	}}

	eng := newTestEngine(t, nil, nil, []source.Adapter{thirty, sixty})
	best, all := eng.EvaluateProduct(context.Background(), &domain.ProductSpec{Name: "Medication"}, eng.adapters)

	require.Len(t, all, 2)
	require.NotNil(t, best)
	assert.Equal(t, "Drogasil", best.Pharmacy)
	assert.InDelta(t, 170.0/60, best.EffectiveUnitPrice, 1e-9)

	assert.Equal(t, "Pague Menos", all[0].Pharmacy, "missing pharmacy defaults to adapter name")
	assert.InDelta(t, 10.0, all[0].Shipping, 1e-9)
	assert.InDelta(t, 100.0/30, all[0].EffectiveUnitPrice, 1e-9)
	assert.Equal(t, []string{"pm-30"}, thirty.quoted)
}

func TestEvaluateProduct_Filtering(t *testing.T) {
	t.Parallel()

	a := &fakeAdapter{name: "Drogasil", offers: []domain.Offer{
		{Title: "Medication 2mg Box", Price: 50, Quantity: 28},
		{Title: "Medication 5mg Box", Price: 20, Quantity: 28},
		{Title: "Other thing 2MG", Price: 10, Quantity: 28},
	}}

	tests := []struct {
		name       string
		terms      []string
		wantTitles []string
	}{
		{name: "no terms keeps everything", terms: nil, wantTitles: []string{
			"Medication 2mg Box", "Medication 5mg Box", "Other thing 2MG",
		}},
		{name: "case insensitive", terms: []string{"2MG"}, wantTitles: []string{
			"Medication 2mg Box", "Other thing 2MG",
		}},
		{name: "all terms required", terms: []string{"medication", "2mg"}, wantTitles: []string{
			"Medication 2mg Box",
		}},
		{name: "nothing matches", terms: []string{"10mg"}, wantTitles: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eng := newTestEngine(t, nil, nil, []source.Adapter{a})
			spec := &domain.ProductSpec{Name: "Medication", RequiredTerms: tt.terms}
			best, all := eng.EvaluateProduct(context.Background(), spec, eng.adapters)

			var titles []string
			for _, o := range all {
				titles = append(titles, o.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
			if tt.wantTitles == nil {
				assert.Nil(t, best)
			} else {
				assert.NotNil(t, best)
			}
		})
	}
}

func TestEvaluateProduct_TieKeepsFirstAdapter(t *testing.T) {
	t.Parallel()

	first := &fakeAdapter{name: "Pague Menos", offers: []domain.Offer{
		{Title: "Medication 28", Price: 56, Quantity: 28},
	}}
	second := &fakeAdapter{name: "Drogasil", offers: []domain.Offer{
		{Title: "Medication 28", Price: 56, Quantity: 28},
	}}

	for _, order := range [][]source.Adapter{{first, second}, {second, first}} {
		eng := newTestEngine(t, nil, nil, order)
		all, idx := eng.evaluateProduct(context.Background(), &domain.ProductSpec{}, order)
		require.Len(t, all, 2)
		assert.Equal(t, 0, idx)
		assert.Equal(t, order[0].Name(), all[idx].Pharmacy)
	}
}

func TestEvaluateProduct_IsolatesFailingAdapters(t *testing.T) {
	t.Parallel()

	failing := sourceMocks.NewMockAdapter(t)
	failing.EXPECT().Name().Return("Drogaria São Paulo")
	failing.EXPECT().
		Search(mock.Anything, "dienogeste", "01310100").
		Return(nil, errors.New("503 from upstream")).
		Once()

	panicking := &fakeAdapter{name: "Pague Menos", panics: true}
	healthy := &fakeAdapter{name: "Drogasil", offers: []domain.Offer{
		{Title: "Dienogeste 2mg 28", Price: 80, Quantity: 28},
	}}

	eng := newTestEngine(t, nil, nil, []source.Adapter{failing, panicking, healthy})
	best, all := eng.EvaluateProduct(
		context.Background(),
		&domain.ProductSpec{Name: "Dienogeste", SearchTerm: "dienogeste"},
		eng.adapters,
	)

	require.Len(t, all, 1)
	require.NotNil(t, best)
	assert.Equal(t, "Drogasil", best.Pharmacy)
}

func TestEngineSearch_RecoversPanic(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, nil, nil, nil)
	offers, err := eng.search(context.Background(), &fakeAdapter{name: "x", panics: true}, "term")
	assert.Nil(t, offers)
	require.ErrorIs(t, err, ErrAdapterPanic)
	assert.Contains(t, err.Error(), "unexpected payload shape")
}

func TestEvaluateProduct_Shipping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		offers       []domain.Offer
		shipErr      error
		postal       string
		wantQuoted   []string
		wantShipping []float64
	}{
		{
			name: "one quote per surviving offer",
			offers: []domain.Offer{
				{Title: "Med 28", SKU: "a", Price: 50, Quantity: 28},
				{Title: "Other", SKU: "b", Price: 50, Quantity: 28},
				{Title: "Med 56", SKU: "c", Price: 90, Quantity: 56},
			},
			postal:       "01310100",
			wantQuoted:   []string{"a", "c"},
			wantShipping: []float64{7.5, 12},
		},
		{
			name:         "offer without sku is not quoted",
			offers:       []domain.Offer{{Title: "Med 28", Price: 50, Quantity: 28}},
			postal:       "01310100",
			wantShipping: []float64{0},
		},
		{
			name:         "offer with shipping is not requoted",
			offers:       []domain.Offer{{Title: "Med 28", SKU: "a", Price: 50, Quantity: 28, Shipping: 3}},
			postal:       "01310100",
			wantShipping: []float64{3},
		},
		{
			name:         "no postal code skips quotes",
			offers:       []domain.Offer{{Title: "Med 28", SKU: "a", Price: 50, Quantity: 28}},
			wantShipping: []float64{0},
		},
		{
			name:         "quote failure leaves shipping unknown",
			offers:       []domain.Offer{{Title: "Med 28", SKU: "a", Price: 50, Quantity: 28}},
			shipErr:      errors.New("simulation failed"),
			postal:       "01310100",
			wantQuoted:   []string{"a"},
			wantShipping: []float64{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := &quotingAdapter{
				fakeAdapter: fakeAdapter{name: "Pague Menos", offers: tt.offers},
				shipping:    map[string]float64{"a": 7.5, "b": 99, "c": 12},
				shipErr:     tt.shipErr,
			}
			eng := newTestEngine(t, nil, nil, []source.Adapter{q}, WithPostalCode(tt.postal))
			_, all := eng.EvaluateProduct(
				context.Background(),
				&domain.ProductSpec{RequiredTerms: []string{"med"}},
				eng.adapters,
			)

			assert.Equal(t, tt.wantQuoted, q.quoted)
			require.Len(t, all, len(tt.wantShipping))
			for i, want := range tt.wantShipping {
				assert.InDelta(t, want, all[i].Shipping, 1e-9)
			}
		})
	}
}

func TestEvaluateProduct_CanceledContextStops(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &fakeAdapter{name: "Drogasil", offers: []domain.Offer{{Title: "Med", Price: 1, Quantity: 1}}}
	eng := newTestEngine(t, nil, nil, []source.Adapter{a})
	best, all := eng.EvaluateProduct(ctx, &domain.ProductSpec{}, eng.adapters)
	assert.Nil(t, best)
	assert.Empty(t, all)
}

func TestBestOffer(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, bestOffer(nil))
	offers := []domain.EvaluatedOffer{
		{EffectiveUnitPrice: 3},
		{EffectiveUnitPrice: 2},
		{EffectiveUnitPrice: 2},
	}
	assert.Equal(t, 1, bestOffer(offers))
}
