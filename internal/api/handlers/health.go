package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/rx-price-tracker/internal/store"
)

const defaultPingTimeout = 2 * time.Second

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	store       store.Store
	pingTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. Readiness pings give up
// after two seconds.
func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s, pingTimeout: defaultPingTimeout}
}

// Healthz returns 200 if the process is running.
//
// @Summary Liveness check
// @Description Returns 200 if the process is running.
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /healthz [get]
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 if the history store is reachable, 503 otherwise.
//
// @Summary Readiness check
// @Description Returns 200 if the history store is reachable, 503 otherwise.
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} StatusResponse
// @Router /readyz [get]
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return c.JSON(
			http.StatusServiceUnavailable,
			map[string]string{"status": "unavailable"},
		)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
