package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/donaldgifford/rx-price-tracker/internal/metrics"
)

// ErrUnexpectedStatus is returned when a storefront answers with a status
// other than 200 or 206.
var ErrUnexpectedStatus = errors.New("unexpected status")

const maxBodyBytes = 8 << 20

// request sends one HTTP request through the adapter's limiter and session
// and returns the response body.
func (b *base) request(
	ctx context.Context,
	method, rawURL string,
	payload any,
	headers map[string]string,
	cookies ...*http.Cookie,
) ([]byte, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.SourceDailyLimitHits.WithLabelValues(b.name).Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	metrics.SourceRequestsTotal.WithLabelValues(b.name, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("%w %d from %s", ErrUnexpectedStatus, resp.StatusCode, req.URL.Host)
	}

	return data, nil
}

func (b *base) getJSON(ctx context.Context, rawURL string, out any) error {
	data, err := b.request(ctx, http.MethodGet, rawURL, nil, map[string]string{"Accept": "application/json"})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing JSON response: %w", err)
	}
	return nil
}

func (b *base) postJSON(
	ctx context.Context,
	rawURL string,
	payload, out any,
	headers map[string]string,
	cookies ...*http.Cookie,
) error {
	data, err := b.request(ctx, http.MethodPost, rawURL, payload, headers, cookies...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing JSON response: %w", err)
	}
	return nil
}

// getDocument fetches an HTML page and returns the parsed document along
// with the raw text, which some storefronts need for stock markers.
func (b *base) getDocument(ctx context.Context, rawURL string) (*goquery.Document, string, error) {
	data, err := b.request(ctx, http.MethodGet, rawURL, nil, nil)
	if err != nil {
		return nil, "", err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, string(data), nil
}

// absoluteURL resolves a storefront-relative link against the base URL.
func (b *base) absoluteURL(link string) string {
	if link == "" || strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	return strings.TrimRight(b.baseURL, "/") + link
}

// cleanPostalCode strips the hyphen from a CEP like "01310-100".
func cleanPostalCode(cep string) string {
	return strings.ReplaceAll(strings.TrimSpace(cep), "-", "")
}
