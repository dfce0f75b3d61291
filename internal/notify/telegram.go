package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier implements Notifier by messaging one chat through a bot.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

type telegramOptions struct {
	endpoint string
	client   *http.Client
}

// TelegramOption configures a TelegramNotifier.
type TelegramOption func(*telegramOptions)

// WithTelegramEndpoint overrides the Bot API endpoint format
// (tgbotapi.APIEndpoint), mainly for tests.
func WithTelegramEndpoint(endpoint string) TelegramOption {
	return func(o *telegramOptions) {
		o.endpoint = endpoint
	}
}

// WithTelegramHTTPClient sets a custom HTTP client.
func WithTelegramHTTPClient(c *http.Client) TelegramOption {
	return func(o *telegramOptions) {
		o.client = c
	}
}

// NewTelegramNotifier returns a notifier that posts to chatID. It makes no
// network call; a bad token or an unreachable Bot API surfaces as a
// SendAlert error.
func NewTelegramNotifier(token string, chatID int64, opts ...TelegramOption) (*TelegramNotifier, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is empty")
	}
	if chatID == 0 {
		return nil, errors.New("telegram chat id is empty")
	}

	o := &telegramOptions{
		endpoint: tgbotapi.APIEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(o)
	}

	// NewBotAPIWithClient would call getMe here.
	bot := &tgbotapi.BotAPI{Token: token, Client: o.client, Buffer: 100}
	bot.SetAPIEndpoint(o.endpoint)

	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// SendAlert sends the alert as a plain-text chat message.
func (n *TelegramNotifier) SendAlert(ctx context.Context, alert *AlertPayload) error {
	defer observeDuration("telegram", time.Now())

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}

	msg := tgbotapi.NewMessage(n.chatID, "🚨 "+alert.Subject()+"\n\n"+alert.Text())
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}
