package notify

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/donaldgifford/rx-price-tracker/internal/config"
)

func testEmailConfig() *config.EmailConfig {
	return &config.EmailConfig{
		Enabled:  true,
		Host:     "smtp.example.com",
		Port:     587,
		Username: "monitor@example.com",
		Password: "secret",
		From:     "monitor@example.com",
		To:       []string{"me@example.com", "partner@example.com"},
	}
}

func TestEmailNotifier_SendAlert(t *testing.T) {
	t.Parallel()

	var (
		gotFrom string
		gotTo   []string
		gotMsg  *gomail.Message
	)
	sender := gomail.SendFunc(func(from string, to []string, msg io.WriterTo) error {
		gotFrom = from
		gotTo = to
		gotMsg, _ = msg.(*gomail.Message)
		return nil
	})

	n := NewEmailNotifier(testEmailConfig(), WithEmailSender(sender))
	alert := testAlert(175)
	require.NoError(t, n.SendAlert(context.Background(), &alert))

	assert.Equal(t, "monitor@example.com", gotFrom)
	assert.ElementsMatch(t, []string{"me@example.com", "partner@example.com"}, gotTo)
	require.NotNil(t, gotMsg)
	assert.Equal(t, []string{"ALERTA DE PREÇO: Dienogeste 2mg"}, gotMsg.GetHeader("Subject"))
}

func TestEmailNotifier_SendError(t *testing.T) {
	t.Parallel()

	sender := gomail.SendFunc(func(string, []string, io.WriterTo) error {
		return errors.New("535 authentication failed")
	})

	n := NewEmailNotifier(testEmailConfig(), WithEmailSender(sender))
	alert := testAlert(175)
	err := n.SendAlert(context.Background(), &alert)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending email")
	assert.Contains(t, err.Error(), "535")
}

func TestEmailNotifier_CanceledContext(t *testing.T) {
	t.Parallel()

	called := false
	sender := gomail.SendFunc(func(string, []string, io.WriterTo) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := NewEmailNotifier(testEmailConfig(), WithEmailSender(sender))
	alert := testAlert(175)
	err := n.SendAlert(ctx, &alert)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestAlertPayload_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		alert   AlertPayload
		want    []string
		wantNot []string
	}{
		{
			name:  "kit shows unit price",
			alert: testAlert(168),
			want: []string{
				"O preço do medicamento Dienogeste 2mg baixou na Drogasil!",
				"Oferta: Dienogeste 2mg 84 Comprimidos",
				"Preço da Caixa (com frete/kit): R$ 168.00",
				"Preço por unidade: R$ 2.00 (84 unidades)",
				"Link: https://www.drogasil.com.br/dienogeste-2mg-84.html",
				"Monitor de Preços Automático",
			},
		},
		{
			name: "single unit omits unit price",
			alert: AlertPayload{
				ProductName: "Visanne",
				Pharmacy:    "Pague Menos",
				TotalPrice:  79.9,
				UnitPrice:   79.9,
				Quantity:    1,
				URL:         "https://example.com/p",
			},
			want:    []string{"Preço da Caixa (com frete/kit): R$ 79.90"},
			wantNot: []string{"Preço por unidade", "Oferta:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			text := tt.alert.Text()
			for _, s := range tt.want {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.wantNot {
				assert.NotContains(t, text, s)
			}
		})
	}
}
