package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/rx-price-tracker/internal/metrics"
)

func testAlert(totalPrice float64) AlertPayload {
	return AlertPayload{
		ProductName:    "Dienogeste 2mg",
		OfferTitle:     "Dienogeste 2mg 84 Comprimidos",
		Pharmacy:       "Drogasil",
		TotalPrice:     totalPrice,
		UnitPrice:      totalPrice / 84,
		Quantity:       84,
		URL:            "https://www.drogasil.com.br/dienogeste-2mg-84.html",
		ThresholdPrice: 200,
	}
}

func TestDiscordNotifier_SendAlert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		alert      AlertPayload
		statusCode int
		wantErr    bool
		errMsg     string
		wantColor  int
	}{
		{
			name:       "valid alert sends embed",
			alert:      testAlert(175),
			statusCode: http.StatusNoContent,
			wantColor:  colorYellow,
		},
		{
			name:       "30 percent under threshold uses green color",
			alert:      testAlert(140),
			statusCode: http.StatusNoContent,
			wantColor:  colorGreen,
		},
		{
			name:       "5 percent under threshold uses orange color",
			alert:      testAlert(190),
			statusCode: http.StatusNoContent,
			wantColor:  colorOrange,
		},
		{
			name:       "discord returns 429 rate limited",
			alert:      testAlert(175),
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400 error",
			alert:      testAlert(175),
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)

					err := json.NewDecoder(r.Body).Decode(&received)
					assert.NoError(t, err)

					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL)
			err := d.SendAlert(context.Background(), &tt.alert)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Equal(t, "ALERTA DE PREÇO: Dienogeste 2mg", embed.Title)
			assert.Equal(t, tt.alert.URL, embed.URL)
			assert.Equal(t, tt.alert.OfferTitle, embed.Description)

			fieldMap := make(map[string]string)
			for _, f := range embed.Fields {
				fieldMap[f.Name] = f.Value
			}
			assert.Equal(t, "Drogasil", fieldMap["Farmácia"])
			assert.Equal(t, formatBRL(tt.alert.TotalPrice), fieldMap["Preço da caixa"])
			assert.Equal(t, "84", fieldMap["Quantidade"])
			assert.Equal(t, "R$ 200.00", fieldMap["Limite"])
		})
	}
}

func TestDiscordNotifier_NoThreshold(t *testing.T) {
	t.Parallel()

	alert := testAlert(100)
	alert.ThresholdPrice = 0

	embed := buildEmbed(&alert)
	assert.Equal(t, colorOrange, embed.Color)
	for _, f := range embed.Fields {
		assert.NotEqual(t, "Limite", f.Name)
	}
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	alert := testAlert(175)
	err := d.SendAlert(context.Background(), &alert)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	alert := testAlert(175)
	err := d.SendAlert(context.Background(), &alert)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}

func getNotificationHistogramSampleCount(backend string) uint64 {
	obs, err := metrics.NotificationDuration.GetMetricWithLabelValues(backend)
	if err != nil {
		return 0
	}
	h, ok := obs.(prometheus.Metric)
	if !ok {
		return 0
	}
	pb := &dto.Metric{}
	_ = h.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestSendAlert_ObservesNotificationDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := getNotificationHistogramSampleCount("discord")

	d := NewDiscordNotifier(srv.URL)
	alert := testAlert(150)
	require.NoError(t, d.SendAlert(context.Background(), &alert))

	after := getNotificationHistogramSampleCount("discord")
	assert.Greater(t, after, before, "NotificationDuration histogram sample count should increase")
}
