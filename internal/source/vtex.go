package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/donaldgifford/rx-price-tracker/pkg/extract"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

const (
	vtexSearchPath     = "/api/io/_v/api/intelligent-search/product_search/trade-policy/1"
	vtexSimulationPath = "/api/checkout/pub/orderForms/simulation"
	vtexPostalCookie   = "vtex_postalCode"
	schemaInStock      = "https://schema.org/InStock"
)

// VTEXAdapter searches storefronts built on VTEX (Pague Menos, Drogaria São
// Paulo). Offers come from the Intelligent Search API with progressive
// promotions applied; when the API yields nothing the search page's
// JSON-LD item list is used instead.
type VTEXAdapter struct {
	base
}

// NewVTEXAdapter creates an adapter for the VTEX storefront at baseURL.
func NewVTEXAdapter(name, baseURL string, opts ...Option) *VTEXAdapter {
	return &VTEXAdapter{base: newBase(name, baseURL, opts)}
}

type vtexSearchResponse struct {
	Products []vtexProduct `json:"products"`
}

type vtexProduct struct {
	ProductName string     `json:"productName"`
	Link        string     `json:"link"`
	Items       []vtexItem `json:"items"`
}

type vtexItem struct {
	ItemID  string       `json:"itemId"`
	Sellers []vtexSeller `json:"sellers"`
}

type vtexSeller struct {
	CommertialOffer vtexCommercialOffer `json:"commertialOffer"`
}

type vtexCommercialOffer struct {
	Price             flexFloat    `json:"Price"`
	AvailableQuantity flexFloat    `json:"AvailableQuantity"`
	Teasers           []vtexTeaser `json:"teasers"`
}

type vtexTeaser struct {
	Conditions struct {
		MinimumQuantity flexFloat `json:"minimumQuantity"`
	} `json:"conditions"`
	Effects struct {
		Parameters []struct {
			Name  string    `json:"name"`
			Value flexFloat `json:"value"`
		} `json:"parameters"`
	} `json:"effects"`
}

// Search implements Adapter.
func (a *VTEXAdapter) Search(ctx context.Context, term, _ string) ([]domain.Offer, error) {
	offers, apiErr := a.searchAPI(ctx, term)
	if apiErr != nil {
		a.log.Warn("intelligent search failed, trying search page",
			"source", a.name, "term", term, "error", apiErr)
	}
	if len(offers) > 0 {
		return offers, nil
	}

	fallback, err := a.searchPage(ctx, term)
	if err != nil {
		return nil, errors.Join(apiErr, err)
	}
	return fallback, nil
}

func (a *VTEXAdapter) searchAPI(ctx context.Context, term string) ([]domain.Offer, error) {
	q := url.Values{}
	q.Set("query", term)
	q.Set("count", strconv.Itoa(a.searchCount))
	u := strings.TrimRight(a.baseURL, "/") + vtexSearchPath + "?" + q.Encode()

	var resp vtexSearchResponse
	if err := a.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("searching %s: %w", a.name, err)
	}

	offers := make([]domain.Offer, 0, len(resp.Products))
	for i := range resp.Products {
		if o, ok := a.convertProduct(&resp.Products[i]); ok {
			offers = append(offers, o)
		}
	}
	return offers, nil
}

// convertProduct turns the first item's first seller offer into an Offer.
// Products that are out of stock or unpriced are skipped.
func (a *VTEXAdapter) convertProduct(p *vtexProduct) (domain.Offer, bool) {
	if len(p.Items) == 0 || len(p.Items[0].Sellers) == 0 {
		return domain.Offer{}, false
	}
	item := p.Items[0]
	co := item.Sellers[0].CommertialOffer

	available := int(co.AvailableQuantity)
	basePrice := float64(co.Price)
	if available <= 0 || basePrice <= 0 {
		return domain.Offer{}, false
	}

	price, promo := extract.BestUnitPrice(basePrice, vtexTeasers(co.Teasers), available)
	title := p.ProductName
	if promo != "" {
		title += " (" + promo + ")"
	}

	quantity := extract.ExtractQuantity(p.ProductName)
	return domain.Offer{
		Pharmacy:  a.name,
		Title:     title,
		SKU:       item.ItemID,
		URL:       a.absoluteURL(p.Link),
		UnitPrice: price / float64(quantity),
		Price:     price,
		Quantity:  quantity,
	}, true
}

func vtexTeasers(raw []vtexTeaser) []extract.Teaser {
	teasers := make([]extract.Teaser, 0, len(raw))
	for _, t := range raw {
		var pct float64
		for _, p := range t.Effects.Parameters {
			if p.Name == "PercentualDiscount" {
				pct = float64(p.Value)
			}
		}
		minQty := int(t.Conditions.MinimumQuantity)
		if minQty == 0 {
			minQty = 1
		}
		teasers = append(teasers, extract.Teaser{MinQuantity: minQty, DiscountPct: pct})
	}
	return teasers
}

type ldItemList struct {
	Type            string `json:"@type"`
	ItemListElement []struct {
		Item ldProduct `json:"item"`
	} `json:"itemListElement"`
}

type ldProduct struct {
	Type   string `json:"@type"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	SKU    string `json:"sku"`
	Offers struct {
		Availability string    `json:"availability"`
		LowPrice     flexFloat `json:"lowPrice"`
		Price        flexFloat `json:"price"`
	} `json:"offers"`
}

// searchPage reads in-stock products from the search page's JSON-LD. No
// shipping quote is available on this path.
func (a *VTEXAdapter) searchPage(ctx context.Context, term string) ([]domain.Offer, error) {
	u := strings.TrimRight(a.baseURL, "/") + "/search?" + url.Values{"_q": {term}}.Encode()
	doc, _, err := a.getDocument(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching %s search page: %w", a.name, err)
	}

	var offers []domain.Offer
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var list ldItemList
		if err := json.Unmarshal([]byte(s.Text()), &list); err != nil || list.Type != "ItemList" {
			return
		}
		for _, el := range list.ItemListElement {
			p := el.Item
			if p.Type != "Product" || p.Offers.Availability != schemaInStock {
				continue
			}
			price := float64(p.Offers.LowPrice)
			if price <= 0 {
				price = float64(p.Offers.Price)
			}
			if price <= 0 {
				continue
			}
			quantity := extract.ExtractQuantity(p.Name)
			offers = append(offers, domain.Offer{
				Pharmacy:  a.name,
				Title:     p.Name,
				URL:       a.absoluteURL(p.URL),
				UnitPrice: price / float64(quantity),
				Price:     price,
				Quantity:  quantity,
			})
		}
	})
	return offers, nil
}

type vtexSimulationRequest struct {
	Items        []vtexSimulationItem `json:"items"`
	Country      string               `json:"country"`
	PostalCode   string               `json:"postalCode"`
	ShippingData struct {
		Address struct {
			PostalCode string `json:"postalCode"`
			Country    string `json:"country"`
		} `json:"address"`
	} `json:"shippingData"`
}

type vtexSimulationItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	Seller   string `json:"seller"`
}

type vtexSimulationResponse struct {
	ShippingData struct {
		LogisticsInfo []struct {
			SLAs []struct {
				DeliveryChannel string    `json:"deliveryChannel"`
				Price           flexFloat `json:"price"`
			} `json:"slas"`
		} `json:"logisticsInfo"`
	} `json:"shippingData"`
}

// ShippingCost implements ShippingQuoter using the checkout simulation. The
// cheapest home-delivery SLA wins; pickup-only results quote zero.
func (a *VTEXAdapter) ShippingCost(ctx context.Context, sku, postalCode string) (float64, error) {
	cep := cleanPostalCode(postalCode)
	if sku == "" || cep == "" {
		return 0, nil
	}

	req := vtexSimulationRequest{
		Items:      []vtexSimulationItem{{ID: sku, Quantity: 1, Seller: "1"}},
		Country:    "BRA",
		PostalCode: cep,
	}
	req.ShippingData.Address.PostalCode = cep
	req.ShippingData.Address.Country = "BRA"

	var resp vtexSimulationResponse
	u := strings.TrimRight(a.baseURL, "/") + vtexSimulationPath
	err := a.postJSON(ctx, u, req, &resp, nil, &http.Cookie{Name: vtexPostalCookie, Value: cep})
	if err != nil {
		return 0, fmt.Errorf("simulating %s shipping: %w", a.name, err)
	}

	if len(resp.ShippingData.LogisticsInfo) == 0 {
		return 0, nil
	}

	cheapest := -1.0
	for _, sla := range resp.ShippingData.LogisticsInfo[0].SLAs {
		if sla.DeliveryChannel != "delivery" {
			continue
		}
		// VTEX quotes in cents.
		price := float64(sla.Price) / 100
		if cheapest < 0 || price < cheapest {
			cheapest = price
		}
	}
	return max(cheapest, 0), nil
}
