package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/rx-price-tracker/internal/store"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// HistoryHandler handles price history queries.
type HistoryHandler struct {
	store store.Store
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(s store.Store) *HistoryHandler {
	return &HistoryHandler{store: s}
}

// --- Input/Output types ---

// ListHistoryInput is the input for listing price history.
type ListHistoryInput struct {
	Product  string `query:"product"   doc:"Filter by configured product name"`
	Pharmacy string `query:"pharmacy"  doc:"Filter by pharmacy"`
	RunID    string `query:"run_id"    doc:"Filter by evaluation cycle"`
	BestOnly bool   `query:"best_only" doc:"Only rows that won their cycle"`
	Limit    int    `query:"limit"     doc:"Number of results (default 50)" minimum:"1" maximum:"500"`
	Offset   int    `query:"offset"    doc:"Pagination offset"              minimum:"0"`
}

// ListHistoryOutput is the response for listing price history.
type ListHistoryOutput struct {
	Body struct {
		Records []domain.PriceRecord `json:"records"`
		Total   int                  `json:"total"`
		Limit   int                  `json:"limit"`
		Offset  int                  `json:"offset"`
	}
}

// LatestOffersOutput is the response for the latest best offers.
type LatestOffersOutput struct {
	Body struct {
		Offers []domain.PriceRecord `json:"offers"`
	}
}

// --- Handlers ---

// ListHistory returns history rows, newest first.
func (h *HistoryHandler) ListHistory(
	ctx context.Context,
	input *ListHistoryInput,
) (*ListHistoryOutput, error) {
	q := &store.HistoryQuery{
		BestOnly: input.BestOnly,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}
	if input.Product != "" {
		q.ProductName = &input.Product
	}
	if input.Pharmacy != "" {
		q.Pharmacy = &input.Pharmacy
	}
	if input.RunID != "" {
		q.RunID = &input.RunID
	}

	records, total, err := h.store.ListHistory(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("history query failed: " + err.Error())
	}
	if records == nil {
		records = []domain.PriceRecord{}
	}

	resp := &ListHistoryOutput{}
	resp.Body.Records = records
	resp.Body.Total = total
	resp.Body.Limit = q.EffectiveLimit()
	resp.Body.Offset = q.Offset
	return resp, nil
}

// LatestOffers returns the most recent winning offer per product.
func (h *HistoryHandler) LatestOffers(
	ctx context.Context,
	_ *struct{},
) (*LatestOffersOutput, error) {
	records, err := h.store.LatestBestOffers(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("latest offers query failed: " + err.Error())
	}
	if records == nil {
		records = []domain.PriceRecord{}
	}

	resp := &LatestOffersOutput{}
	resp.Body.Offers = records
	return resp, nil
}

// RegisterHistoryRoutes registers history endpoints with the Huma API.
func RegisterHistoryRoutes(api huma.API, h *HistoryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-history",
		Method:      http.MethodGet,
		Path:        "/api/v1/history",
		Summary:     "List price history",
		Description: "Returns recorded offers with optional product, pharmacy, run, and best-offer filters.",
		Tags:        []string{"history"},
	}, h.ListHistory)

	huma.Register(api, huma.Operation{
		OperationID: "latest-offers",
		Method:      http.MethodGet,
		Path:        "/api/v1/history/latest",
		Summary:     "Latest best offers",
		Description: "Returns the most recent best offer recorded for each product.",
		Tags:        []string{"history"},
	}, h.LatestOffers)
}
