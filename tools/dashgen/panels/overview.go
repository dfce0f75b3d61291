package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func probeStat(title, description, metric string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(metric, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// HealthzStat returns a stat panel showing the liveness probe status.
func HealthzStat() *stat.PanelBuilder {
	return probeStat("Healthz", "Liveness probe status (1 = ok, 0 = failing)", `rpt_healthz_up`)
}

// ReadyzStat returns a stat panel showing the readiness probe status, which
// tracks history store reachability.
func ReadyzStat() *stat.PanelBuilder {
	return probeStat("Readyz", "History store reachability (1 = ready, 0 = not ready)", `rpt_readyz_up`)
}

// LastCycleStat returns a stat panel showing the time since the last
// evaluation cycle finished.
func LastCycleStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Last Cycle").
		Description("Time since an evaluation cycle last completed").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`time() - timestamp(increase(rpt_cycle_duration_seconds_count{job="`+Job+`"}[1d]) > 0)`,
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(6*3600, 12*3600)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Uptime").
		Description("Time since process start").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`time() - process_start_time_seconds{job="`+Job+`"}`,
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
