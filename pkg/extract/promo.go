package extract

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Teaser is a storefront tiered-discount rule: buying MinQuantity units
// takes DiscountPct percent off the last one.
type Teaser struct {
	MinQuantity int     `json:"min_quantity"`
	DiscountPct float64 `json:"discount_pct"`
}

var hundred = decimal.NewFromInt(100)

// BestUnitPrice folds progressive "buy N, last unit X% off" promotions into
// the lowest achievable per-unit price. A teaser applies only when
// MinQuantity > 1, availableQty >= MinQuantity, and DiscountPct > 0.
// Discounts of 100% or more make the bonus unit free. Malformed teasers are
// skipped. When nothing applies it returns (basePrice, "").
func BestUnitPrice(basePrice float64, teasers []Teaser, availableQty int) (float64, string) {
	if len(teasers) == 0 || math.IsNaN(basePrice) || math.IsInf(basePrice, 0) {
		return basePrice, ""
	}

	base := decimal.NewFromFloat(basePrice)
	best := base
	desc := ""

	for _, t := range teasers {
		if !applicable(t, availableQty) {
			continue
		}

		pct := decimal.NewFromFloat(math.Min(t.DiscountPct, 100))
		minQty := decimal.NewFromInt(int64(t.MinQuantity))

		total := base.Mul(minQty.Sub(pct.Div(hundred)))
		candidate := total.Div(minQty)

		if candidate.LessThan(best) {
			best = candidate
			desc = describe(t.MinQuantity, pct)
		}
	}

	return best.InexactFloat64(), desc
}

func applicable(t Teaser, availableQty int) bool {
	if math.IsNaN(t.DiscountPct) || math.IsInf(t.DiscountPct, 0) {
		return false
	}
	return t.MinQuantity > 1 && availableQty >= t.MinQuantity && t.DiscountPct > 0
}

func describe(minQty int, pct decimal.Decimal) string {
	if pct.GreaterThanOrEqual(hundred) {
		return fmt.Sprintf("Leve %d Pague %d", minQty, minQty-1)
	}
	return fmt.Sprintf("Leve %d com %s%% no último", minQty, pct.String())
}
