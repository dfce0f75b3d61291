package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, CycleDuration)
	assert.NotNil(t, OffersEvaluatedTotal)
	assert.NotNil(t, ProductErrorsTotal)
	assert.NotNil(t, PersistenceFailuresTotal)
	assert.NotNil(t, BestOfferUnitPrice)
	assert.NotNil(t, SourceErrorsTotal)
	assert.NotNil(t, SourceRequestsTotal)
	assert.NotNil(t, SourceDailyUsage)
	assert.NotNil(t, SourceDailyLimitHits)
	assert.NotNil(t, AlertsFiredTotal)
	assert.NotNil(t, NotificationFailuresTotal)
	assert.NotNil(t, NotificationDuration)
}

func TestLabeledMetrics(t *testing.T) {
	t.Parallel()

	BestOfferUnitPrice.WithLabelValues("metrics-test-product").Set(2.5)
	assert.InDelta(t, 2.5, testutil.ToFloat64(BestOfferUnitPrice.WithLabelValues("metrics-test-product")), 1e-9)

	SourceDailyUsage.WithLabelValues("metrics-test-source").Set(7)
	assert.InDelta(t, 7.0, testutil.ToFloat64(SourceDailyUsage.WithLabelValues("metrics-test-source")), 1e-9)
}
