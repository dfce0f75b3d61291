package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// rx-price-tracker operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: apiVersion,
		Kind:       kind,
		Metadata:   metadata("rpt-alerts"),
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "rpt-alerts",
					Rules: []Rule{
						{
							Alert:  "RptDown",
							Expr:   `absent(up{job="rx-price-tracker"})`,
							For:    "5m",
							Labels: severity("critical"),
							Annotations: annotations(
								"RX Price Tracker is down",
								"The rx-price-tracker job has been absent for more than 5 minutes.",
							),
						},
						{
							Alert:  "RptStoreUnreachable",
							Expr:   `rpt_readyz_up == 0`,
							For:    "5m",
							Labels: severity("critical"),
							Annotations: annotations(
								"History store is unreachable",
								"The readiness probe has failed for 5 minutes; price history is not being recorded.",
							),
						},
						{
							Alert:  "RptHighErrorRate",
							Expr:   `rpt:http_errors:rate5m / rpt:http_requests:rate5m > 0.05`,
							For:    "10m",
							Labels: severity("warning"),
							Annotations: annotations(
								"High API error rate",
								"More than 5% of API requests have returned 5xx for 10 minutes.",
							),
						},
						{
							Alert:  "RptNoCycles",
							Expr:   `increase(rpt_cycle_duration_seconds_count[13h]) == 0`,
							For:    "15m",
							Labels: severity("warning"),
							Annotations: annotations(
								"No evaluation cycle has completed recently",
								"No evaluation cycle has finished in the last 13 hours; the scheduler may be stuck.",
							),
						},
						{
							Alert:  "RptSourceErrors",
							Expr:   `rpt:source_errors:rate5m > 0`,
							For:    "30m",
							Labels: severity("warning"),
							Annotations: annotations(
								"Storefront searches are failing",
								"Searches against {{ $labels.source }} have been failing for 30 minutes.",
							),
						},
						{
							Alert:  "RptSourceLimitReached",
							Expr:   `increase(rpt_source_daily_limit_hits_total[5m]) > 0`,
							For:    "0m",
							Labels: severity("warning"),
							Annotations: annotations(
								"Storefront daily request budget exhausted",
								"The daily request budget for {{ $labels.source }} ran out; its offers are skipped until the window rolls over.",
							),
						},
						{
							Alert:  "RptPersistenceFailures",
							Expr:   `increase(rpt_persistence_failures_total[15m]) > 0`,
							For:    "0m",
							Labels: severity("warning"),
							Annotations: annotations(
								"History or state writes are failing",
								"Price records or notification state could not be written; alerts may repeat.",
							),
						},
						{
							Alert:  "RptNotificationFailures",
							Expr:   `increase(rpt_notification_failures_total[5m]) > 0`,
							For:    "1m",
							Labels: severity("warning"),
							Annotations: annotations(
								"Notification delivery failures detected",
								"One or more price alerts could not be delivered by any configured notifier.",
							),
						},
					},
				},
			},
		},
	}
}

func severity(level string) map[string]string {
	return map[string]string{"severity": level}
}

func annotations(summary, description string) map[string]string {
	return map[string]string{
		"summary":     summary,
		"description": description,
	}
}
