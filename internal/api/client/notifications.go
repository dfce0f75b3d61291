package client

import (
	"context"
	"errors"
	"net/http"

	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// ListNotifications returns the last alert sent per product.
func (c *Client) ListNotifications(ctx context.Context) ([]domain.NotificationState, error) {
	var resp struct {
		Notifications []domain.NotificationState `json:"notifications"`
	}
	if err := c.get(ctx, "/api/v1/notifications", &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

// Run triggers one evaluation cycle and waits for its summary.
func (c *Client) Run(ctx context.Context) (*domain.CycleSummary, error) {
	var summary domain.CycleSummary
	if err := c.post(ctx, "/api/v1/run", nil, &summary); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			return nil, ErrCycleInProgress
		}
		return nil, err
	}
	return &summary, nil
}
