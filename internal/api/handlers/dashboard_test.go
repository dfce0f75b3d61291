package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/rx-price-tracker/internal/api/handlers"
	storeMocks "github.com/donaldgifford/rx-price-tracker/internal/store/mocks"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

func TestDashboard_Index(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		records     []domain.PriceRecord
		err         error
		wantStatus  int
		wantContain []string
		wantAbsent  []string
	}{
		{
			name: "renders best offers",
			records: []domain.PriceRecord{{
				ProductName:         "Dienogeste 2mg",
				Pharmacy:            "Drogasil",
				OfferTitle:          "Dienogeste 2mg 84 comprimidos",
				URL:                 "https://ds.example/84",
				TotalPrice:          168,
				TotalEffectivePrice: 2,
				Timestamp:           ts,
			}},
			wantStatus: http.StatusOK,
			wantContain: []string{
				"<td>Dienogeste 2mg</td>",
				"<td>Drogasil</td>",
				`href="https://ds.example/84"`,
				"R$ 168.00",
				"R$ 2.0000",
				"2026-03-10 09:30:00",
			},
		},
		{
			name: "escapes offer text",
			records: []domain.PriceRecord{{
				ProductName: "Dienogeste",
				OfferTitle:  "<script>alert(1)</script>",
				URL:         "javascript:alert(1)",
				Timestamp:   ts,
			}},
			wantStatus:  http.StatusOK,
			wantContain: []string{"&lt;script&gt;", `href="about:invalid#TemplFailedSanitizationURL"`},
			wantAbsent:  []string{"<script>", `href="javascript:`},
		},
		{
			name:        "empty history",
			wantStatus:  http.StatusOK,
			wantContain: []string{"Nenhuma oferta registrada"},
			wantAbsent:  []string{"<table>"},
		},
		{
			name:        "store error returns 500",
			err:         assert.AnError,
			wantStatus:  http.StatusInternalServerError,
			wantContain: []string{"<!doctype html>", "<p>failed to load latest offers</p>"},
			wantAbsent:  []string{"<table>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockStore := storeMocks.NewMockStore(t)
			mockStore.EXPECT().LatestBestOffers(mock.Anything).Return(tt.records, tt.err).Once()

			h := handlers.NewDashboardHandler(mockStore, slog.New(slog.NewTextHandler(io.Discard, nil)))

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, h.Index(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get(echo.HeaderContentType))

			body := rec.Body.String()
			for _, s := range tt.wantContain {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.wantAbsent {
				assert.NotContains(t, body, s)
			}
		})
	}
}
