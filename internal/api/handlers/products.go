package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/rx-price-tracker/internal/engine"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// ProductCatalog exposes the configured products and the clock used to
// judge snoozes.
type ProductCatalog interface {
	Products() []domain.ProductSpec
	Now() time.Time
}

// ProductsHandler handles product listing requests.
type ProductsHandler struct {
	catalog ProductCatalog
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(c ProductCatalog) *ProductsHandler {
	return &ProductsHandler{catalog: c}
}

// ProductStatus is a configured product with its current snooze state.
type ProductStatus struct {
	domain.ProductSpec
	State       string `json:"state"                  enum:"ACTIVE,SNOOZED"`
	SnoozeError string `json:"snooze_error,omitempty" doc:"Set when snooze_until could not be parsed"`
}

// ListProductsOutput is the response for listing products.
type ListProductsOutput struct {
	Body struct {
		Products []ProductStatus `json:"products"`
		Total    int             `json:"total"`
	}
}

// ListProducts returns every configured product in config order.
func (h *ProductsHandler) ListProducts(
	_ context.Context,
	_ *struct{},
) (*ListProductsOutput, error) {
	specs := h.catalog.Products()
	now := h.catalog.Now()

	out := make([]ProductStatus, 0, len(specs))
	for i := range specs {
		st := ProductStatus{ProductSpec: specs[i]}
		state, err := engine.SnoozeState(&specs[i], now)
		st.State = string(state)
		if err != nil {
			st.SnoozeError = err.Error()
		}
		out = append(out, st)
	}

	resp := &ListProductsOutput{}
	resp.Body.Products = out
	resp.Body.Total = len(out)
	return resp, nil
}

// RegisterProductRoutes registers product endpoints with the Huma API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List monitored products",
		Description: "Returns the configured products with their current snooze state.",
		Tags:        []string{"products"},
	}, h.ListProducts)
}
