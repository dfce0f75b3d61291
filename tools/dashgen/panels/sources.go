package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SourceRequestRate returns a timeseries panel showing storefront request
// rate by source.
func SourceRequestRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Storefront Requests").
		Description("Outbound storefront requests per second, by source").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`rpt:source_requests:rate5m`, "{{source}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SourceErrors returns a timeseries panel showing failed storefront searches
// by source.
func SourceErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Storefront Errors").
		Description("Failed storefront searches per second, by source").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`rpt:source_errors:rate5m`, "{{source}}", "A")).
		WithTarget(PromQuery(
			`sum by (source) (rate(rpt_source_requests_total{job="`+Job+`",status=~"4..|5.."}[5m]))`,
			"{{source}} http error", "B",
		)).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SourceDailyUsage returns a timeseries panel showing the rolling 24h
// request count each storefront has been sent.
func SourceDailyUsage() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Daily Usage").
		Description("Requests sent to each storefront in the rolling 24h window").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`rpt_source_daily_usage{job="`+Job+`"}`, "{{source}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LimitHits returns a stat panel showing how often any storefront's daily
// budget ran out in the past 24 hours.
func LimitHits() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Limit Hits (24h)").
		Description("Times a storefront daily request budget was exhausted in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(FullWidth).
		WithTarget(PromQuery(
			`sum(increase(rpt_source_daily_limit_hits_total{job="`+Job+`"}[24h]))`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
