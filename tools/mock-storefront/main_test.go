package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadFixture_Embedded(t *testing.T) {
	fixture, err := loadFixture("")
	if err != nil {
		t.Fatalf("loading embedded fixture: %v", err)
	}
	if len(fixture.Products) != 3 {
		t.Errorf("products=%d, want 3", len(fixture.Products))
	}
}

func TestLoadFixture_MissingFile(t *testing.T) {
	if _, err := loadFixture("fixtures/does-not-exist.json"); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestSearchHandler(t *testing.T) {
	fixture, err := loadFixture("")
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	srv := httptest.NewServer(newMux(testLogger(), fixture, 1290))
	defer srv.Close()

	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{name: "all words must match", query: "?query=dienogeste+2mg", wantCount: 2},
		{name: "case insensitive", query: "?query=VISANNE", wantCount: 1},
		{name: "count caps results", query: "?query=dienogeste&count=1", wantCount: 1},
		{name: "no match", query: "?query=allurene", wantCount: 0},
		{name: "empty query returns everything", query: "", wantCount: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/api/io/_v/api/intelligent-search/product_search/trade-policy/1" + tt.query)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status=%d, want 200", resp.StatusCode)
			}
			var body searchResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			if body.Products == nil {
				t.Fatal("products should be an empty array, not null")
			}
			if len(body.Products) != tt.wantCount {
				t.Errorf("products=%d, want %d", len(body.Products), tt.wantCount)
			}
		})
	}
}

func TestSimulationHandler(t *testing.T) {
	handler := simulationHandler(testLogger(), 1590)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "quotes delivery", body: `{"items":[{"id":"1001","quantity":1,"seller":"1"}],"postalCode":"01310100"}`, wantStatus: http.StatusOK},
		{name: "no items", body: `{"items":[]}`, wantStatus: http.StatusBadRequest},
		{name: "bad json", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/checkout/pub/orderForms/simulation", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status=%d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp struct {
				ShippingData struct {
					LogisticsInfo []struct {
						SLAs []struct {
							DeliveryChannel string `json:"deliveryChannel"`
							Price           int    `json:"price"`
						} `json:"slas"`
					} `json:"logisticsInfo"`
				} `json:"shippingData"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			slas := resp.ShippingData.LogisticsInfo[0].SLAs
			if len(slas) != 2 {
				t.Fatalf("slas=%d, want 2", len(slas))
			}
			if slas[0].DeliveryChannel != "delivery" || slas[0].Price != 1590 {
				t.Errorf("delivery sla=%+v, want price 1590", slas[0])
			}
		})
	}
}
