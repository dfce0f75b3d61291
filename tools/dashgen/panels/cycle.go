package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CycleDuration returns a timeseries panel showing evaluation cycle
// duration percentiles.
func CycleDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cycle Duration").
		Description("Evaluation cycle duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(quantileExpr(0.50, "rpt_cycle_duration_seconds_bucket"), "p50", "A")).
		WithTarget(PromQuery(quantileExpr(0.95, "rpt_cycle_duration_seconds_bucket"), "p95", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// OffersEvaluated returns a timeseries panel showing the rate of offers that
// passed the title filter, by source.
func OffersEvaluated() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Offers Evaluated").
		Description("Offers accepted by the title filter per second, by source").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`rpt:offers_evaluated:rate5m`, "{{source}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CycleFailures returns a timeseries panel showing failed product
// evaluations alongside failed history or state writes.
func CycleFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Product / Persistence Failures").
		Description("Failed product evaluations and failed history or state writes").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`rpt:product_errors:rate5m`, "product errors", "A")).
		WithTarget(PromQuery(
			`rate(rpt_persistence_failures_total{job="`+Job+`"}[5m])`,
			"persistence failures", "B",
		)).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(0.001, 0.01)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// BestOfferPrice returns a timeseries panel charting each product's best
// effective unit price over time.
func BestOfferPrice() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Best Effective Unit Price").
		Description("Effective unit price of each product's best offer (BRL)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(`rpt_best_offer_effective_unit_price{job="`+Job+`"}`, "{{product}}", "A")).
		Unit("currencyBRL").
		FillOpacity(0).
		LineWidth(2).
		Legend(TableLegend("min", "last")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
