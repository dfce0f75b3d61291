package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/rx-price-tracker/internal/engine"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// CycleRunner defines the interface for triggering an evaluation cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*domain.CycleSummary, error)
}

// RunHandler handles manual cycle trigger requests.
type RunHandler struct {
	runner CycleRunner
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(r CycleRunner) *RunHandler {
	return &RunHandler{runner: r}
}

// RunOutput is the response body for the run endpoint.
type RunOutput struct {
	Body *domain.CycleSummary
}

// Run executes one evaluation cycle synchronously and returns its summary.
func (h *RunHandler) Run(ctx context.Context, _ *struct{}) (*RunOutput, error) {
	summary, err := h.runner.RunCycle(ctx)
	if errors.Is(err, engine.ErrCycleInProgress) {
		return nil, huma.Error409Conflict("a cycle is already running")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("cycle failed: " + err.Error())
	}
	return &RunOutput{Body: summary}, nil
}

// RegisterTriggerRoutes registers trigger endpoints with the Huma API.
func RegisterTriggerRoutes(api huma.API, h *RunHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "run-cycle",
		Method:      http.MethodPost,
		Path:        "/api/v1/run",
		Summary:     "Run an evaluation cycle",
		Description: "Searches every storefront for every product, records history, " +
			"and sends alerts. Returns 409 if a cycle is already running.",
		Tags:   []string{"run"},
		Errors: []int{http.StatusConflict, http.StatusInternalServerError},
	}, h.Run)
}
