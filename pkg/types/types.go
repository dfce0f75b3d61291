// Package domain defines the core business types for the rx price tracker.
package domain

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SnoozeDateLayout is the accepted format for ProductSpec.SnoozeUntil.
const SnoozeDateLayout = "2006-01-02"

// Offer is a normalized price quote from one storefront for one search.
// Adapters coerce whatever the storefront returns into this shape.
type Offer struct {
	Pharmacy string `json:"pharmacy"`
	Title    string `json:"title"`
	SKU      string `json:"sku,omitempty"`
	URL      string `json:"url"`

	// UnitPrice is Price / Quantity with no promotion or shipping
	// correction. Informational only.
	UnitPrice float64 `json:"unit_price"`
	// Price is the box total after the best applicable promotion.
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	// Shipping is the cost to the configured postal code; 0 means free or
	// unknown.
	Shipping float64 `json:"shipping"`
}

// Normalize clamps the offer to its invariants: quantity >= 1 and
// non-negative prices.
func (o *Offer) Normalize() {
	if o.Quantity < 1 {
		o.Quantity = 1
	}
	if o.Price < 0 {
		o.Price = 0
	}
	if o.Shipping < 0 {
		o.Shipping = 0
	}
	if o.UnitPrice <= 0 {
		o.UnitPrice = o.Price / float64(o.Quantity)
	}
}

// TotalPrice returns the box price including shipping.
func (o *Offer) TotalPrice() float64 {
	return o.Price + o.Shipping
}

// EvaluatedOffer is an Offer with its effective unit price computed.
type EvaluatedOffer struct {
	Offer

	// EffectiveUnitPrice is (Price + Shipping) / Quantity, the only value
	// used to compare offers across sources and pack sizes.
	EffectiveUnitPrice float64 `json:"effective_unit_price"`
}

// Evaluate computes the effective unit price for o.
func Evaluate(o Offer) EvaluatedOffer {
	o.Normalize()
	return EvaluatedOffer{
		Offer:              o,
		EffectiveUnitPrice: o.TotalPrice() / float64(o.Quantity),
	}
}

// IsKit reports whether the offer sells more than one unit per box.
func (e *EvaluatedOffer) IsKit() bool {
	return e.Quantity > 1
}

// ProductSpec is a configured product to monitor.
type ProductSpec struct {
	Name          string   `json:"name"                   yaml:"name"`
	SearchTerm    string   `json:"search_term"            yaml:"search_term"`
	RequiredTerms []string `json:"required_terms"         yaml:"required_terms"`
	// ThresholdPrice is a box price including shipping. Offers at or above
	// it never alert.
	ThresholdPrice float64 `json:"threshold_price"        yaml:"threshold_price"`
	// SnoozeUntil is an optional YYYY-MM-DD date. It is kept as text so an
	// unparsable value can fail open instead of rejecting the config.
	SnoozeUntil string `json:"snooze_until,omitempty" yaml:"snooze_until"`
}

// MatchesTitle reports whether title contains every required term,
// ignoring case and accents, so "capsula" matches "Cápsulas". A spec with
// no required terms matches everything.
func (p *ProductSpec) MatchesTitle(title string) bool {
	if len(p.RequiredTerms) == 0 {
		return true
	}
	folded := foldText(title)
	for _, term := range p.RequiredTerms {
		if !strings.Contains(folded, foldText(term)) {
			return false
		}
	}
	return true
}

// foldText strips combining marks after canonical decomposition and then
// case-folds. Transformers carry state, so each call builds its own chain.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), cases.Fold(), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return cases.Fold().String(s)
	}
	return out
}

// NotificationState is the last alert sent for a product.
type NotificationState struct {
	ProductName string    `json:"product_name" db:"product_name"`
	Pharmacy    string    `json:"pharmacy"     db:"pharmacy"`
	Price       float64   `json:"price"        db:"price"`
	NotifiedAt  time.Time `json:"notified_at"  db:"notified_at"`
}

// PriceRecord is one evaluated offer as persisted to history.
type PriceRecord struct {
	ID                  int64     `json:"id"                    db:"id"`
	RunID               string    `json:"run_id"                db:"run_id"`
	Timestamp           time.Time `json:"timestamp"             db:"timestamp"`
	Pharmacy            string    `json:"pharmacy"              db:"pharmacy"`
	ProductName         string    `json:"product_name"          db:"product_name"`
	OfferTitle          string    `json:"offer_title"           db:"offer_title"`
	URL                 string    `json:"url"                   db:"url"`
	UnitPrice           float64   `json:"unit_price"            db:"unit_price"`
	TotalPrice          float64   `json:"total_price"           db:"total_price"`
	ShippingCost        float64   `json:"shipping_cost"         db:"shipping_cost"`
	TotalEffectivePrice float64   `json:"total_effective_price" db:"total_effective_price"`
	IsKit               bool      `json:"is_kit"                db:"is_kit"`
	KitSize             int       `json:"kit_size"              db:"kit_size"`
	IsBestOffer         bool      `json:"is_best_offer"         db:"is_best_offer"`
	Notified            bool      `json:"notified"              db:"notified"`
}

// NewPriceRecord builds the history row for an evaluated offer.
func NewPriceRecord(runID, productName string, ts time.Time, e *EvaluatedOffer) PriceRecord {
	return PriceRecord{
		RunID:               runID,
		Timestamp:           ts,
		Pharmacy:            e.Pharmacy,
		ProductName:         productName,
		OfferTitle:          e.Title,
		URL:                 e.URL,
		UnitPrice:           e.UnitPrice,
		TotalPrice:          e.Price,
		ShippingCost:        e.Shipping,
		TotalEffectivePrice: e.EffectiveUnitPrice,
		IsKit:               e.IsKit(),
		KitSize:             e.Quantity,
	}
}

// CycleSummary reports the outcome of one evaluation cycle.
type CycleSummary struct {
	RunID             string        `json:"run_id"`
	ProductsEvaluated int           `json:"products_evaluated"`
	ProductsFailed    int           `json:"products_failed"`
	OffersRecorded    int           `json:"offers_recorded"`
	AlertsSent        int           `json:"alerts_sent"`
	StartedAt         time.Time     `json:"started_at"`
	Duration          time.Duration `json:"duration_ns"`
}
