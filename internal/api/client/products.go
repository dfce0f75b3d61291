package client

import (
	"context"

	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// ProductStatus is a configured product with its current snooze state.
type ProductStatus struct {
	domain.ProductSpec
	State       string `json:"state"`
	SnoozeError string `json:"snooze_error,omitempty"`
}

// ListProducts returns the products the server monitors.
func (c *Client) ListProducts(ctx context.Context) ([]ProductStatus, error) {
	var resp struct {
		Products []ProductStatus `json:"products"`
	}
	if err := c.get(ctx, "/api/v1/products", &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}
