package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 500)")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestClient_ListProducts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[` +
			`{"name":"Dienogeste 2mg","search_term":"dienogeste 2mg","required_terms":["dienogeste"],` +
			`"threshold_price":200,"state":"SNOOZED","snooze_until":"2026-03-12"}],"total":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Dienogeste 2mg", result[0].Name)
	assert.Equal(t, []string{"dienogeste"}, result[0].RequiredTerms)
	assert.Equal(t, "SNOOZED", result[0].State)
	assert.InDelta(t, 200.0, result[0].ThresholdPrice, 0)
}

func TestClient_ListHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		params    ListHistoryParams
		wantQuery map[string]string
	}{
		{
			name:      "no params",
			wantQuery: map[string]string{},
		},
		{
			name:   "all params",
			params: ListHistoryParams{Product: "Dienogeste 2mg", Pharmacy: "Drogasil", RunID: "r1", BestOnly: true, Limit: 10, Offset: 20},
			wantQuery: map[string]string{
				"product":   "Dienogeste 2mg",
				"pharmacy":  "Drogasil",
				"run_id":    "r1",
				"best_only": "true",
				"limit":     "10",
				"offset":    "20",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/history", r.URL.Path)
				q := r.URL.Query()
				assert.Len(t, q, len(tt.wantQuery))
				for k, v := range tt.wantQuery {
					assert.Equal(t, v, q.Get(k), k)
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(HistoryResponse{
					Records: []domain.PriceRecord{{ID: 7, Pharmacy: "Drogasil"}},
					Total:   1,
				})
			}))
			defer srv.Close()

			c := New(srv.URL)
			resp, err := c.ListHistory(context.Background(), &tt.params)
			require.NoError(t, err)
			assert.Equal(t, 1, resp.Total)
			require.Len(t, resp.Records, 1)
			assert.Equal(t, int64(7), resp.Records[0].ID)
		})
	}
}

func TestClient_LatestOffers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/history/latest", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"offers":[{"product_name":"Dienogeste 2mg","is_best_offer":true}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	offers, err := c.LatestOffers(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.True(t, offers[0].IsBestOffer)
}

func TestClient_ListNotifications(t *testing.T) {
	t.Parallel()

	notifiedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/notifications", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"notifications": []domain.NotificationState{{
				ProductName: "Dienogeste 2mg", Pharmacy: "Drogasil", Price: 168, NotifiedAt: notifiedAt,
			}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	states, err := c.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.True(t, states[0].NotifiedAt.Equal(notifiedAt))
}

func TestClient_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		wantErrIs error
		wantErr   bool
		wantRunID string
	}{
		{
			name:      "returns summary",
			status:    http.StatusOK,
			body:      `{"run_id":"run-1","products_evaluated":2,"alerts_sent":1}`,
			wantRunID: "run-1",
		},
		{
			name:      "conflict maps to in-progress",
			status:    http.StatusConflict,
			body:      `{"title":"Conflict","status":409}`,
			wantErrIs: ErrCycleInProgress,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"title":"Internal Server Error"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/v1/run", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			summary, err := c.Run(context.Background())

			switch {
			case tt.wantErrIs != nil:
				require.ErrorIs(t, err, tt.wantErrIs)
			case tt.wantErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrCycleInProgress)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantRunID, summary.RunID)
			}
		})
	}
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	c := New("http://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
}
