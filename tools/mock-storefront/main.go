// Package main implements a mock VTEX storefront for local development.
// It serves Intelligent Search results from a JSON fixture and a fixed
// checkout simulation quote, so the tracker can run end to end without
// touching a real pharmacy.
package main

import (
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	searchPath     = "GET /api/io/_v/api/intelligent-search/product_search/trade-policy/1"
	simulationPath = "POST /api/checkout/pub/orderForms/simulation"
)

//go:embed fixtures/products.json
var defaultFixture []byte

type searchResponse struct {
	Products []json.RawMessage `json:"products"`
}

type productName struct {
	ProductName string `json:"productName"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "", "path to a search response fixture (default: embedded)")
	shippingCents := flag.Int("shipping-cents", 1290, "delivery price quoted by the simulation, in cents")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "products", len(fixture.Products))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock storefront", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, fixture, *shippingCents)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, fixture *searchResponse, shippingCents int) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(searchPath, searchHandler(logger, fixture))
	mux.HandleFunc(simulationPath, simulationHandler(logger, shippingCents))
	return mux
}

func loadFixture(path string) (*searchResponse, error) {
	data := defaultFixture
	if path != "" {
		var err error
		data, err = os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
		if err != nil {
			return nil, fmt.Errorf("reading fixture: %w", err)
		}
	}
	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

// searchHandler matches every word of the query against product names,
// case-insensitively, and honors the count parameter.
func searchHandler(logger *slog.Logger, fixture *searchResponse) http.HandlerFunc {
	type indexedProduct struct {
		raw  json.RawMessage
		name string
	}
	products := make([]indexedProduct, 0, len(fixture.Products))
	for _, raw := range fixture.Products {
		var p productName
		//nolint:errcheck,gosec // fixture data is trusted; name extraction is best-effort
		json.Unmarshal(raw, &p)
		products = append(products, indexedProduct{raw: raw, name: strings.ToLower(p.ProductName)})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		words := strings.Fields(strings.ToLower(r.URL.Query().Get("query")))

		count := 12
		if v, err := strconv.Atoi(r.URL.Query().Get("count")); err == nil && v > 0 {
			count = v
		}

		matched := []json.RawMessage{}
		for _, p := range products {
			if matchesAll(p.name, words) {
				matched = append(matched, p.raw)
			}
		}
		total := len(matched)
		if len(matched) > count {
			matched = matched[:count]
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(searchResponse{Products: matched})
		logger.Info("search", "query", words, "matched", total, "returned", len(matched))
	}
}

func matchesAll(name string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(name, w) {
			return false
		}
	}
	return true
}

type simulationRequest struct {
	Items []struct {
		ID string `json:"id"`
	} `json:"items"`
	PostalCode string `json:"postalCode"`
}

// simulationHandler quotes one delivery SLA and one free pickup SLA for the
// first requested item.
func simulationHandler(logger *slog.Logger, shippingCents int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req simulationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Items) == 0 {
			http.Error(w, `{"error":"invalid simulation request"}`, http.StatusBadRequest)
			return
		}

		cep := req.PostalCode
		if c, err := r.Cookie("vtex_postalCode"); err == nil && cep == "" {
			cep = c.Value
		}

		resp := map[string]any{
			"shippingData": map[string]any{
				"logisticsInfo": []map[string]any{{
					"itemIndex": 0,
					"slas": []map[string]any{
						{"id": "Normal", "deliveryChannel": "delivery", "price": shippingCents},
						{"id": "Retirada", "deliveryChannel": "pickup-in-point", "price": 0},
					},
				}},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(resp)
		logger.Info("simulation", "sku", req.Items[0].ID, "postal_code", cep, "price_cents", shippingCents)
	}
}
