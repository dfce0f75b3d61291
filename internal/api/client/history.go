package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// HistoryResponse wraps a paginated history response.
type HistoryResponse struct {
	Records []domain.PriceRecord `json:"records"`
	Total   int                  `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}

// ListHistoryParams defines query parameters for history queries.
type ListHistoryParams struct {
	Product  string
	Pharmacy string
	RunID    string
	BestOnly bool
	Limit    int
	Offset   int
}

// ListHistory returns history rows matching the given parameters.
func (c *Client) ListHistory(
	ctx context.Context,
	params *ListHistoryParams,
) (*HistoryResponse, error) {
	q := url.Values{}
	if params.Product != "" {
		q.Set("product", params.Product)
	}
	if params.Pharmacy != "" {
		q.Set("pharmacy", params.Pharmacy)
	}
	if params.RunID != "" {
		q.Set("run_id", params.RunID)
	}
	if params.BestOnly {
		q.Set("best_only", "true")
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	path := "/api/v1/history"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp HistoryResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LatestOffers returns the most recent best offer per product.
func (c *Client) LatestOffers(ctx context.Context) ([]domain.PriceRecord, error) {
	var resp struct {
		Offers []domain.PriceRecord `json:"offers"`
	}
	if err := c.get(ctx, "/api/v1/history/latest", &resp); err != nil {
		return nil, err
	}
	return resp.Offers, nil
}
