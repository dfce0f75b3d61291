package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/rx-price-tracker/internal/metrics"
	"github.com/donaldgifford/rx-price-tracker/internal/source"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// ErrAdapterPanic wraps a panic recovered from a storefront adapter.
var ErrAdapterPanic = errors.New("adapter panicked")

// EvaluateProduct queries every adapter for spec, keeps the offers whose
// title contains all required terms, and returns them with the best one.
// best is nil when nothing survives filtering. A failing adapter
// contributes no offers.
func (eng *Engine) EvaluateProduct(
	ctx context.Context,
	spec *domain.ProductSpec,
	adapters []source.Adapter,
) (best *domain.EvaluatedOffer, all []domain.EvaluatedOffer) {
	all, bestIdx := eng.evaluateProduct(ctx, spec, adapters)
	if bestIdx < 0 {
		return nil, all
	}
	return &all[bestIdx], all
}

// evaluateProduct returns the surviving offers in adapter order and the
// index of the best one, or -1.
func (eng *Engine) evaluateProduct(
	ctx context.Context,
	spec *domain.ProductSpec,
	adapters []source.Adapter,
) ([]domain.EvaluatedOffer, int) {
	var all []domain.EvaluatedOffer

	for i, a := range adapters {
		if ctx.Err() != nil {
			break
		}

		offers, err := eng.search(ctx, a, spec.SearchTerm)
		if err != nil {
			eng.log.Warn("source failed, continuing without it",
				"product", spec.Name,
				"source", a.Name(),
				"error", err,
			)
			metrics.SourceErrorsTotal.WithLabelValues(a.Name()).Inc()
		}

		for _, o := range offers {
			if !spec.MatchesTitle(o.Title) {
				continue
			}
			if o.Pharmacy == "" {
				o.Pharmacy = a.Name()
			}
			eng.quoteShipping(ctx, a, &o)
			all = append(all, domain.Evaluate(o))
			metrics.OffersEvaluatedTotal.WithLabelValues(a.Name()).Inc()
		}

		if i < len(adapters)-1 && eng.pacing > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(eng.pacing):
			}
		}
	}

	return all, bestOffer(all)
}

// bestOffer returns the index of the lowest effective unit price. Ties keep
// the first one seen.
func bestOffer(offers []domain.EvaluatedOffer) int {
	best := -1
	for i := range offers {
		if best < 0 || offers[i].EffectiveUnitPrice < offers[best].EffectiveUnitPrice {
			best = i
		}
	}
	return best
}

// search runs one adapter call, converting a panic into an error.
func (eng *Engine) search(ctx context.Context, a source.Adapter, term string) (offers []domain.Offer, err error) {
	ctx, span := eng.tracer.Start(ctx, "adapter.search", trace.WithAttributes(
		attribute.String("source", a.Name()),
		attribute.String("term", term),
	))
	defer func() {
		if r := recover(); r != nil {
			offers, err = nil, fmt.Errorf("%w: %v", ErrAdapterPanic, r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.Int("offers", len(offers)))
		span.End()
	}()

	return a.Search(ctx, term, eng.postalCode)
}

// quoteShipping fills o.Shipping from the adapter's shipping capability when
// the offer does not already carry one. Failures leave shipping at 0
// (unknown).
func (eng *Engine) quoteShipping(ctx context.Context, a source.Adapter, o *domain.Offer) {
	q, ok := a.(source.ShippingQuoter)
	if !ok || o.Shipping > 0 || o.SKU == "" || eng.postalCode == "" {
		return
	}

	cost, err := q.ShippingCost(ctx, o.SKU, eng.postalCode)
	if err != nil {
		eng.log.Debug("shipping quote failed",
			"source", a.Name(),
			"sku", o.SKU,
			"error", err,
		)
		return
	}
	o.Shipping = cost
}
