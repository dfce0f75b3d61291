package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: apiVersion,
		Kind:       kind,
		Metadata:   metadata("rpt-recording-rules"),
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "rpt-recording",
					Rules: []Rule{
						record("rpt:http_requests:rate5m", `sum(rate(rpt_http_requests_total[5m]))`),
						record("rpt:http_errors:rate5m", `sum(rate(rpt_http_requests_total{status=~"5.."}[5m]))`),
						record("rpt:source_requests:rate5m", `sum by (source) (rate(rpt_source_requests_total[5m]))`),
						record("rpt:source_errors:rate5m", `sum by (source) (rate(rpt_source_errors_total[5m]))`),
						record("rpt:offers_evaluated:rate5m", `sum by (source) (rate(rpt_offers_evaluated_total[5m]))`),
						record("rpt:product_errors:rate5m", `rate(rpt_product_errors_total[5m])`),
						record(
							"rpt:notification_duration:p95_5m",
							`histogram_quantile(0.95, sum by (le, backend) (rate(rpt_notification_duration_seconds_bucket[5m])))`,
						),
					},
				},
			},
		},
	}
}

func record(name, expr string) Rule {
	return Rule{Record: name, Expr: expr}
}
