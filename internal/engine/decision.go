package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// priceTolerance is the largest price movement treated as "unchanged" when
// comparing against the last alert.
const priceTolerance = 0.01

// ProductState is the alerting state of a product.
type ProductState string

// Product states.
const (
	StateActive  ProductState = "ACTIVE"
	StateSnoozed ProductState = "SNOOZED"
)

// Decision reasons, reported in logs and spans.
const (
	ReasonSnoozed         = "snoozed"
	ReasonNoOffer         = "no_offer"
	ReasonAboveThreshold  = "above_threshold"
	ReasonFirstAlert      = "first_alert"
	ReasonPriceChanged    = "price_changed"
	ReasonPharmacyChanged = "pharmacy_changed"
	ReasonAlreadyNotified = "already_notified"
)

// Decision is the outcome of evaluating a product's best offer.
type Decision struct {
	Notify bool
	State  ProductState
	Reason string
	// SnoozeErr is set when snooze_until could not be parsed. The product
	// is treated as active.
	SnoozeErr error
}

// SnoozeState reports whether spec is snoozed at now. An unparsable
// snooze date yields StateActive together with the parse error.
func SnoozeState(spec *domain.ProductSpec, now time.Time) (ProductState, error) {
	raw := strings.TrimSpace(spec.SnoozeUntil)
	if raw == "" {
		return StateActive, nil
	}

	until, err := time.ParseInLocation(domain.SnoozeDateLayout, raw, now.Location())
	if err != nil {
		return StateActive, fmt.Errorf("parsing snooze_until %q: %w", raw, err)
	}

	// Snoozed while today's date is strictly before the snooze date, i.e.
	// until local midnight at the start of that day.
	if now.Before(until) {
		return StateSnoozed, nil
	}
	return StateActive, nil
}

// Decide reports whether best warrants an alert given the last alert sent
// for the product. prior is nil when the product has never alerted.
func Decide(
	spec *domain.ProductSpec,
	best *domain.EvaluatedOffer,
	prior *domain.NotificationState,
	now time.Time,
) Decision {
	state, snoozeErr := SnoozeState(spec, now)
	d := Decision{State: state, SnoozeErr: snoozeErr}

	switch {
	case state == StateSnoozed:
		d.Reason = ReasonSnoozed
		return d
	case best == nil:
		d.Reason = ReasonNoOffer
		return d
	}

	total := best.TotalPrice()
	switch {
	case total >= spec.ThresholdPrice:
		d.Reason = ReasonAboveThreshold
	case prior == nil:
		d.Notify, d.Reason = true, ReasonFirstAlert
	case best.Pharmacy != prior.Pharmacy:
		d.Notify, d.Reason = true, ReasonPharmacyChanged
	case math.Abs(total-prior.Price) > priceTolerance:
		d.Notify, d.Reason = true, ReasonPriceChanged
	default:
		d.Reason = ReasonAlreadyNotified
	}
	return d
}
