package main

import "errors"

// KnownMetrics is the set of metric names exported by rx-price-tracker plus
// the recording rules dashboards and alerts reference.
var KnownMetrics = map[string]bool{
	// API metrics.
	"rpt_http_request_duration_seconds": true,
	"rpt_http_requests_total":           true,
	"rpt_healthz_up":                    true,
	"rpt_readyz_up":                     true,

	// Evaluation cycle metrics.
	"rpt_cycle_duration_seconds":          true,
	"rpt_offers_evaluated_total":          true,
	"rpt_product_errors_total":            true,
	"rpt_persistence_failures_total":      true,
	"rpt_best_offer_effective_unit_price": true,

	// Storefront metrics.
	"rpt_source_errors_total":           true,
	"rpt_source_requests_total":         true,
	"rpt_source_daily_usage":            true,
	"rpt_source_daily_limit_hits_total": true,

	// Alert metrics.
	"rpt_alerts_fired_total":            true,
	"rpt_notification_failures_total":   true,
	"rpt_notification_duration_seconds": true,

	// Recording rules.
	"rpt:http_requests:rate5m":         true,
	"rpt:http_errors:rate5m":           true,
	"rpt:source_requests:rate5m":       true,
	"rpt:source_errors:rate5m":         true,
	"rpt:offers_evaluated:rate5m":      true,
	"rpt:product_errors:rate5m":        true,
	"rpt:notification_duration:p95_5m": true,

	// Standard Prometheus metrics.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
