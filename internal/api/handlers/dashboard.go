package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/rx-price-tracker/internal/store"
)

//go:generate go run github.com/a-h/templ/cmd/templ generate -f dashboard.templ

// DashboardHandler renders the HTML status page.
type DashboardHandler struct {
	store store.Store
	log   *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(s store.Store, log *slog.Logger) *DashboardHandler {
	return &DashboardHandler{store: s, log: log}
}

// Index renders a table of the latest best offer per product.
func (h *DashboardHandler) Index(c echo.Context) error {
	offers, err := h.store.LatestBestOffers(c.Request().Context())
	if err != nil {
		h.log.Error("loading latest offers", "error", err)
		templ.Handler(
			dashboardError("failed to load latest offers"),
			templ.WithStatus(http.StatusInternalServerError),
		).ServeHTTP(c.Response(), c.Request())
		return nil
	}

	templ.Handler(dashboardPage(offers)).ServeHTTP(c.Response(), c.Request())
	return nil
}

func brl(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

// brlUnit keeps four decimals so per-unit prices of large packs stay
// comparable.
func brlUnit(v float64) string {
	return fmt.Sprintf("R$ %.4f", v)
}
