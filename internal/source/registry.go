package source

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/donaldgifford/rx-price-tracker/internal/config"
)

// Registry builds the enabled storefront adapters from config, preserving
// configured order. Each adapter gets its own cookie jar and rate limiter.
func Registry(cfg *config.Config, log *slog.Logger) ([]Adapter, error) {
	if log == nil {
		log = slog.Default()
	}

	storefronts := cfg.EnabledStorefronts()
	adapters := make([]Adapter, 0, len(storefronts))
	for _, sf := range storefronts {
		a, err := New(sf, cfg.Sources.RequestTimeout, log)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}

// New builds the adapter for a single storefront.
func New(sf config.StorefrontConfig, timeout time.Duration, log *slog.Logger) (Adapter, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	opts := []Option{
		WithHTTPClient(&http.Client{Timeout: timeout, Jar: jar}),
		WithRateLimiter(NewRateLimiter(
			sf.Name,
			sf.RateLimit.PerSecond,
			sf.RateLimit.Burst,
			sf.RateLimit.DailyLimit,
		)),
		WithLogger(log),
		WithSearchCount(sf.SearchCount),
		WithProductPageCheck(sf.ProductPageCheck),
	}

	switch sf.Kind {
	case config.KindVTEX:
		return NewVTEXAdapter(sf.Name, sf.BaseURL, opts...), nil
	case config.KindNextData:
		return NewNextDataAdapter(sf.Name, sf.BaseURL, opts...), nil
	default:
		return nil, fmt.Errorf("unknown storefront kind %q for %s", sf.Kind, sf.Name)
	}
}
