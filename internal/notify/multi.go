package notify

import (
	"context"
	"errors"
)

// Multi fans an alert out to several backends. Every backend is attempted;
// failures are joined.
type Multi struct {
	notifiers []Notifier
}

// NewMulti creates a Multi over notifiers.
func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// SendAlert implements Notifier.
func (m *Multi) SendAlert(ctx context.Context, alert *AlertPayload) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.SendAlert(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
