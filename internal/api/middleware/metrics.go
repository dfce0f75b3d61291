// Package middleware provides Echo middleware for the rx-price-tracker API.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/rx-price-tracker/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route, so scanners
// probing random paths cannot grow the label set.
const unmatchedRoute = "unmatched"

// probeGauges maps probe paths to their up gauge. Probes update only the
// gauge; /metrics scrapes are not recorded at all.
var probeGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and status
// by route template.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := responseStatus(c, err)

			route := c.Path()
			if gauge, ok := probeGauges[route]; ok {
				setUp(gauge, status)
				return err
			}
			if route == "/metrics" {
				return err
			}
			if route == "" {
				route = unmatchedRoute
			}

			labels := []string{c.Request().Method, route, strconv.Itoa(status)}
			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()

			return err
		}
	}
}

// responseStatus returns the status the client will see. A handler error
// has not been written yet when the middleware runs; echo's error handler
// writes it afterwards.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func setUp(g prometheus.Gauge, status int) {
	if status >= 200 && status < 300 {
		g.Set(1)
		return
	}
	g.Set(0)
}
