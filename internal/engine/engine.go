// Package engine runs evaluation cycles: it aggregates storefront offers per
// product, decides whether the best one warrants an alert, persists history,
// and notifies.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/rx-price-tracker/internal/metrics"
	"github.com/donaldgifford/rx-price-tracker/internal/notify"
	"github.com/donaldgifford/rx-price-tracker/internal/source"
	"github.com/donaldgifford/rx-price-tracker/internal/store"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

const (
	tracerName         = "github.com/donaldgifford/rx-price-tracker/internal/engine"
	defaultPacingDelay = 2 * time.Second
)

// ErrCycleInProgress is returned by RunCycle when another cycle is running.
var ErrCycleInProgress = errors.New("evaluation cycle already in progress")

// Engine orchestrates aggregation, decision, persistence, and alerting.
type Engine struct {
	store    store.Store
	adapters []source.Adapter
	notifier notify.Notifier
	log      *slog.Logger
	tracer   trace.Tracer
	meter    metric.Meter

	cycleLatency metric.Float64Histogram
	alertsSent   metric.Int64Counter

	products   []domain.ProductSpec
	postalCode string
	pacing     time.Duration
	now        func() time.Time

	mu sync.Mutex
}

// NewEngine creates a new Engine with injected dependencies. Adapter order
// breaks ties between equally priced offers.
func NewEngine(
	s store.Store,
	adapters []source.Adapter,
	n notify.Notifier,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		store:    s,
		adapters: adapters,
		notifier: n,
		log:      slog.Default(),
		tracer:   otel.Tracer(tracerName),
		pacing:   defaultPacingDelay,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.meter == nil {
		eng.meter = otel.GetMeterProvider().Meter(tracerName)
	}
	eng.registerInstruments()
	return eng
}

func (eng *Engine) registerInstruments() {
	var err error
	eng.cycleLatency, err = eng.meter.Float64Histogram(
		"rpt.cycle.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("Wall time of one evaluation cycle"),
	)
	if err != nil {
		eng.log.Warn("unable to register cycle latency instrument", "error", err)
		eng.cycleLatency = noop.Float64Histogram{}
	}

	eng.alertsSent, err = eng.meter.Int64Counter(
		"rpt.alerts.sent",
		metric.WithDescription("Alerts delivered, by product"),
	)
	if err != nil {
		eng.log.Warn("unable to register alert counter", "error", err)
		eng.alertsSent = noop.Int64Counter{}
	}
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithProducts sets the products evaluated each cycle.
func WithProducts(products []domain.ProductSpec) EngineOption {
	return func(e *Engine) {
		e.products = products
	}
}

// WithPostalCode sets the delivery postal code used for searches and
// shipping quotes.
func WithPostalCode(cep string) EngineOption {
	return func(e *Engine) {
		e.postalCode = cep
	}
}

// WithPacing sets the delay between adapter calls for one product.
func WithPacing(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.pacing = d
	}
}

// WithNowFunc overrides the clock.
func WithNowFunc(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithTracerProvider sets the tracer provider used for cycle spans. The
// global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(e *Engine) {
		e.tracer = tp.Tracer(tracerName)
	}
}

// WithMeterProvider sets the meter provider for OTLP instruments. The
// global provider is used otherwise.
func WithMeterProvider(mp metric.MeterProvider) EngineOption {
	return func(e *Engine) {
		e.meter = mp.Meter(tracerName)
	}
}

// Products returns the configured products.
func (eng *Engine) Products() []domain.ProductSpec {
	return eng.products
}

// Now returns the engine clock's current time.
func (eng *Engine) Now() time.Time {
	return eng.now()
}

// RunCycle evaluates every configured product once, in order. A failure in
// one product is logged and counted; the remaining products still run.
func (eng *Engine) RunCycle(ctx context.Context) (*domain.CycleSummary, error) {
	if !eng.mu.TryLock() {
		return nil, ErrCycleInProgress
	}
	defer eng.mu.Unlock()

	start := eng.now()
	summary := &domain.CycleSummary{
		RunID:     uuid.NewString(),
		StartedAt: start,
	}

	ctx, span := eng.tracer.Start(ctx, "cycle", trace.WithAttributes(
		attribute.String("run_id", summary.RunID),
		attribute.Int("products", len(eng.products)),
	))
	defer span.End()

	log := eng.log.With("run_id", summary.RunID)
	log.Info("cycle starting", "products", len(eng.products), "sources", len(eng.adapters))

	for i := range eng.products {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("cycle interrupted: %w", err)
		}

		spec := &eng.products[i]
		res, err := eng.runProduct(ctx, log, summary.RunID, spec)
		if err != nil {
			log.Error("product evaluation failed", "product", spec.Name, "error", err)
			metrics.ProductErrorsTotal.Inc()
			summary.ProductsFailed++
			continue
		}

		summary.ProductsEvaluated++
		summary.OffersRecorded += res.recorded
		if res.alerted {
			summary.AlertsSent++
		}
	}

	summary.Duration = eng.now().Sub(start)
	metrics.CycleDuration.Observe(summary.Duration.Seconds())
	eng.cycleLatency.Record(ctx, float64(summary.Duration)/float64(time.Millisecond),
		metric.WithAttributes(attribute.Int("failed", summary.ProductsFailed)),
	)

	log.Info("cycle complete",
		"evaluated", summary.ProductsEvaluated,
		"failed", summary.ProductsFailed,
		"offers_recorded", summary.OffersRecorded,
		"alerts_sent", summary.AlertsSent,
		"duration", summary.Duration,
	)

	return summary, nil
}

type productResult struct {
	recorded int
	alerted  bool
}

func (eng *Engine) runProduct(
	ctx context.Context,
	log *slog.Logger,
	runID string,
	spec *domain.ProductSpec,
) (res productResult, err error) {
	ctx, span := eng.tracer.Start(ctx, "product", trace.WithAttributes(
		attribute.String("product", spec.Name),
	))
	defer func() {
		span.SetAttributes(attribute.Bool("notified", res.alerted))
		span.End()
	}()

	offers, bestIdx := eng.evaluateProduct(ctx, spec, eng.adapters)
	span.SetAttributes(attribute.Int("offers", len(offers)))
	if bestIdx < 0 {
		log.Info("no matching offers", "product", spec.Name)
		return res, nil
	}
	best := &offers[bestIdx]

	metrics.BestOfferUnitPrice.WithLabelValues(spec.Name).Set(best.EffectiveUnitPrice)
	log.Info("best offer",
		"product", spec.Name,
		"pharmacy", best.Pharmacy,
		"title", best.Title,
		"total_price", best.TotalPrice(),
		"effective_unit_price", best.EffectiveUnitPrice,
		"offers", len(offers),
	)

	prior, err := eng.store.LastNotificationState(ctx, spec.Name)
	if errors.Is(err, store.ErrNotFound) {
		prior = nil
	} else if err != nil {
		return res, fmt.Errorf("reading notification state: %w", err)
	}

	now := eng.now()
	decision := Decide(spec, best, prior, now)
	if decision.SnoozeErr != nil {
		log.Warn("ignoring invalid snooze date", "product", spec.Name, "error", decision.SnoozeErr)
	}
	span.SetAttributes(attribute.String("decision", decision.Reason))

	records := make([]domain.PriceRecord, len(offers))
	for i := range offers {
		records[i] = domain.NewPriceRecord(runID, spec.Name, now, &offers[i])
	}
	records[bestIdx].IsBestOffer = true
	records[bestIdx].Notified = decision.Notify

	var state *domain.NotificationState
	if decision.Notify {
		state = &domain.NotificationState{
			ProductName: spec.Name,
			Pharmacy:    best.Pharmacy,
			Price:       best.TotalPrice(),
			NotifiedAt:  now,
		}
	}

	// History and state commit before the alert goes out. A failed commit
	// does not cancel the alert; the next cycle dedups against whatever
	// state did persist.
	if err := eng.store.CommitCycle(ctx, records, state); err != nil {
		log.Error("persisting cycle failed", "product", spec.Name, "error", err)
		metrics.PersistenceFailuresTotal.Inc()
	} else {
		res.recorded = len(records)
	}

	if !decision.Notify {
		log.Debug("no alert", "product", spec.Name, "reason", decision.Reason, "state", decision.State)
		return res, nil
	}

	if err := eng.notifier.SendAlert(ctx, notify.NewAlertPayload(spec, best)); err != nil {
		log.Warn("sending alert failed", "product", spec.Name, "error", err)
		metrics.NotificationFailuresTotal.Inc()
		return res, nil
	}

	metrics.AlertsFiredTotal.Inc()
	eng.alertsSent.Add(ctx, 1, metric.WithAttributes(attribute.String("product", spec.Name)))
	res.alerted = true
	log.Info("alert sent", "product", spec.Name, "reason", decision.Reason, "pharmacy", best.Pharmacy)
	return res, nil
}
