package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/rx-price-tracker/internal/store"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// NotificationsHandler exposes the per-product dedup state.
type NotificationsHandler struct {
	store store.Store
}

// NewNotificationsHandler creates a new NotificationsHandler.
func NewNotificationsHandler(s store.Store) *NotificationsHandler {
	return &NotificationsHandler{store: s}
}

// ListNotificationsOutput is the response for listing notification state.
type ListNotificationsOutput struct {
	Body struct {
		Notifications []domain.NotificationState `json:"notifications"`
	}
}

// ListNotifications returns the last alert sent for every product that has
// alerted at least once.
func (h *NotificationsHandler) ListNotifications(
	ctx context.Context,
	_ *struct{},
) (*ListNotificationsOutput, error) {
	states, err := h.store.ListNotificationStates(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list notification state")
	}
	if states == nil {
		states = []domain.NotificationState{}
	}

	resp := &ListNotificationsOutput{}
	resp.Body.Notifications = states
	return resp, nil
}

// RegisterNotificationRoutes registers notification state endpoints.
func RegisterNotificationRoutes(api huma.API, h *NotificationsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-notifications",
		Method:      http.MethodGet,
		Path:        "/api/v1/notifications",
		Summary:     "List notification state",
		Description: "Returns the last alert sent per product, used to suppress repeat alerts.",
		Tags:        []string{"notifications"},
	}, h.ListNotifications)
}
