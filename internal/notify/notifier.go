// Package notify defines the notification interface and implementations
// for price alert delivery.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/donaldgifford/rx-price-tracker/internal/config"
	"github.com/donaldgifford/rx-price-tracker/internal/metrics"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// AlertPayload contains the data needed to send a price alert.
type AlertPayload struct {
	ProductName string
	OfferTitle  string
	Pharmacy    string
	// TotalPrice is the box price including shipping.
	TotalPrice     float64
	UnitPrice      float64
	Quantity       int
	URL            string
	ThresholdPrice float64
}

// NewAlertPayload builds the alert for a product's winning offer.
func NewAlertPayload(spec *domain.ProductSpec, best *domain.EvaluatedOffer) *AlertPayload {
	return &AlertPayload{
		ProductName:    spec.Name,
		OfferTitle:     best.Title,
		Pharmacy:       best.Pharmacy,
		TotalPrice:     best.TotalPrice(),
		UnitPrice:      best.EffectiveUnitPrice,
		Quantity:       best.Quantity,
		URL:            best.URL,
		ThresholdPrice: spec.ThresholdPrice,
	}
}

// Subject is the alert headline shared by all backends.
func (a *AlertPayload) Subject() string {
	return "ALERTA DE PREÇO: " + a.ProductName
}

// Text renders the plain-text alert body.
func (a *AlertPayload) Text() string {
	var b strings.Builder
	b.WriteString("Olá!\n\n")
	fmt.Fprintf(&b, "O preço do medicamento %s baixou na %s!\n\n", a.ProductName, a.Pharmacy)
	if a.OfferTitle != "" {
		fmt.Fprintf(&b, "Oferta: %s\n", a.OfferTitle)
	}
	fmt.Fprintf(&b, "Preço da Caixa (com frete/kit): %s\n", formatBRL(a.TotalPrice))
	if a.Quantity > 1 {
		fmt.Fprintf(&b, "Preço por unidade: %s (%d unidades)\n", formatBRL(a.UnitPrice), a.Quantity)
	}
	fmt.Fprintf(&b, "Link: %s\n\n", a.URL)
	b.WriteString("---\nMonitor de Preços Automático\n")
	return b.String()
}

func formatBRL(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

// Notifier defines the interface for sending price alert notifications.
type Notifier interface {
	SendAlert(ctx context.Context, alert *AlertPayload) error
}

func observeDuration(backend string, start time.Time) {
	metrics.NotificationDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
}

// FromConfig builds the notifier for every enabled backend. With nothing
// enabled it returns a NoOpNotifier; with more than one it fans out through
// Multi.
func FromConfig(cfg *config.NotificationsConfig, log *slog.Logger) (Notifier, error) {
	var backends []Notifier

	if cfg.Email.Enabled {
		backends = append(backends, NewEmailNotifier(&cfg.Email))
	}
	if cfg.Discord.Enabled {
		backends = append(backends, NewDiscordNotifier(cfg.Discord.WebhookURL))
	}
	if cfg.Telegram.Enabled {
		tg, err := NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, fmt.Errorf("creating telegram notifier: %w", err)
		}
		backends = append(backends, tg)
	}

	switch len(backends) {
	case 0:
		log.Warn("no notification backend enabled, alerts will only be logged")
		return NewNoOpNotifier(log), nil
	case 1:
		return backends[0], nil
	default:
		return NewMulti(backends...), nil
	}
}
