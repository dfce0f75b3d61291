package notify

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/donaldgifford/rx-price-tracker/internal/config"
)

// EmailNotifier implements Notifier over SMTP. The dialer upgrades to
// STARTTLS when the server offers it.
type EmailNotifier struct {
	from string
	to   []string
	send func(m *gomail.Message) error
}

// EmailOption configures an EmailNotifier.
type EmailOption func(*EmailNotifier)

// WithEmailSender replaces the SMTP dialer, mainly for tests.
func WithEmailSender(s gomail.Sender) EmailOption {
	return func(n *EmailNotifier) {
		n.send = func(m *gomail.Message) error {
			return gomail.Send(s, m)
		}
	}
}

// NewEmailNotifier creates an EmailNotifier from SMTP settings.
func NewEmailNotifier(cfg *config.EmailConfig, opts ...EmailOption) *EmailNotifier {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	n := &EmailNotifier{
		from: cfg.From,
		to:   cfg.To,
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SendAlert sends the alert as a plain-text email to every recipient.
func (n *EmailNotifier) SendAlert(ctx context.Context, alert *AlertPayload) error {
	defer observeDuration("email", time.Now())

	// gomail has no context support; honor cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to...)
	m.SetHeader("Subject", alert.Subject())
	m.SetBody("text/plain", alert.Text())

	if err := n.send(m); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}
