// Package source provides storefront adapters that turn a search term into
// normalized offers. The aggregator only sees the Adapter interface; each
// storefront's payload shapes stay inside its adapter.
package source

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// Adapter searches one storefront for offers.
type Adapter interface {
	// Name identifies the storefront in offers, logs, and metrics.
	Name() string
	// Search returns the in-stock offers for term, priced for postalCode
	// where the storefront supports it. Shipping is left at zero; see
	// ShippingQuoter.
	Search(ctx context.Context, term, postalCode string) ([]domain.Offer, error)
}

// ShippingQuoter is implemented by adapters that can quote delivery cost for
// one unit of a SKU to a postal code. The aggregator calls it at most once
// per surviving offer.
type ShippingQuoter interface {
	ShippingCost(ctx context.Context, sku, postalCode string) (float64, error)
}

const (
	defaultTimeout     = 15 * time.Second
	defaultSearchCount = 12
	userAgent          = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// base carries what every storefront adapter shares: identity, endpoint,
// HTTP session, pacing, and logging.
type base struct {
	name        string
	baseURL     string
	client      *http.Client
	limiter     *RateLimiter
	log         *slog.Logger
	searchCount int
	pdpCheck    bool
}

// Option configures a storefront adapter.
type Option func(*base)

// WithHTTPClient overrides the adapter's HTTP client. The client should
// carry a cookie jar when the storefront keys shipping quotes on cookies.
func WithHTTPClient(c *http.Client) Option {
	return func(b *base) {
		b.client = c
	}
}

// WithRateLimiter paces every request the adapter sends.
func WithRateLimiter(r *RateLimiter) Option {
	return func(b *base) {
		b.limiter = r
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *base) {
		b.log = l
	}
}

// WithSearchCount sets how many results to request per search.
func WithSearchCount(n int) Option {
	return func(b *base) {
		if n > 0 {
			b.searchCount = n
		}
	}
}

// WithProductPageCheck makes adapters that support it confirm price and
// stock on each product's detail page.
func WithProductPageCheck(enabled bool) Option {
	return func(b *base) {
		b.pdpCheck = enabled
	}
}

func newBase(name, baseURL string, opts []Option) base {
	jar, _ := cookiejar.New(nil)
	b := base{
		name:        name,
		baseURL:     baseURL,
		client:      &http.Client{Timeout: defaultTimeout, Jar: jar},
		log:         slog.Default(),
		searchCount: defaultSearchCount,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Name implements Adapter.
func (b *base) Name() string {
	return b.name
}
