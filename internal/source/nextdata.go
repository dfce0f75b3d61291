package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/donaldgifford/rx-price-tracker/pkg/extract"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

const nextDataShippingPath = "/api/v1/shipping/calculate"

// outOfStockMarkers appear on product pages that cannot be bought.
var outOfStockMarkers = []string{"Produto Indisponível", "Avise-me"}

// NextDataAdapter searches Next.js storefronts (Drogasil) by reading the
// product list embedded in the search page's __NEXT_DATA__ script. When
// that list is missing it falls back to the rendered product cards.
type NextDataAdapter struct {
	base
}

// NewNextDataAdapter creates an adapter for the storefront at baseURL.
func NewNextDataAdapter(name, baseURL string, opts ...Option) *NextDataAdapter {
	return &NextDataAdapter{base: newBase(name, baseURL, opts)}
}

// Search implements Adapter.
func (a *NextDataAdapter) Search(ctx context.Context, term, _ string) ([]domain.Offer, error) {
	u := strings.TrimRight(a.baseURL, "/") + "/search?" + url.Values{"w": {term}}.Encode()
	doc, _, err := a.getDocument(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching %s search page: %w", a.name, err)
	}

	offers := a.fromNextData(ctx, doc)
	if len(offers) == 0 {
		offers = a.fromProductCards(ctx, doc)
	}
	return offers, nil
}

func nextData(doc *goquery.Document) any {
	script := doc.Find("script#__NEXT_DATA__").First()
	if script.Length() == 0 {
		return nil
	}
	var data any
	if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
		return nil
	}
	return data
}

func (a *NextDataAdapter) fromNextData(ctx context.Context, doc *goquery.Document) []domain.Offer {
	data := nextData(doc)
	if data == nil {
		return nil
	}

	products := findObjects(data, "products")
	offers := make([]domain.Offer, 0, len(products))
	for _, p := range products {
		title := asString(p["name"])
		if title == "" {
			continue
		}

		price := listedPrice(p)
		link := asString(p["url_key"])
		if link == "" {
			link = asString(p["url"])
		}
		link = a.absoluteURL(link)

		if a.pdpCheck {
			if pdp := a.productPagePrice(ctx, link); pdp > 0 {
				price = pdp
			}
		}

		// "Leve mais, pague menos": per-box price when buying lmpm_qty boxes.
		lmpmPrice := asFloat(lookup(p, "price_aux", "lmpm_value_to"))
		lmpmQty := asString(lookup(p, "price_aux", "lmpm_qty"))
		if lmpmPrice > 0 && lmpmQty != "" && (price <= 0 || lmpmPrice < price) {
			price = lmpmPrice
			title += fmt.Sprintf(" (Leve %s Pague Menos: R$ %.2f cada)", lmpmQty, lmpmPrice)
		}

		if price <= 0 {
			continue
		}

		sku := asString(p["sku"])
		if sku == "" {
			sku = asString(p["objectID"])
		}

		quantity := extract.ExtractQuantity(asString(p["name"]))
		offers = append(offers, domain.Offer{
			Pharmacy:  a.name,
			Title:     title,
			SKU:       sku,
			URL:       link,
			UnitPrice: price / float64(quantity),
			Price:     price,
			Quantity:  quantity,
		})
	}
	return offers
}

// listedPrice picks the first non-zero price the search payload carries.
func listedPrice(p map[string]any) float64 {
	candidates := []any{
		lookup(p, "price", "value"),
		lookup(p, "price", "final_price", "value"),
		p["priceService"],
		p["valueTo"],
	}
	for _, c := range candidates {
		if v := asFloat(c); v > 0 {
			return v
		}
	}
	return 0
}

// fromProductCards scrapes rendered product cards. With the product page
// check enabled, only cards whose detail page confirms a price are kept.
func (a *NextDataAdapter) fromProductCards(ctx context.Context, doc *goquery.Document) []domain.Offer {
	var offers []domain.Offer
	doc.Find(`div[class*="ProductCard"]`).Each(func(_ int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find("h2").First().Text())
		priceText := card.Find(`span[class*="Price"]`).First().Text()
		if title == "" || priceText == "" {
			return
		}

		href, _ := card.Find("a").First().Attr("href")
		link := a.absoluteURL(href)

		price := extract.ParsePrice(priceText)
		if a.pdpCheck {
			price = a.productPagePrice(ctx, link)
		}
		if price <= 0 {
			return
		}

		quantity := extract.ExtractQuantity(title)
		offers = append(offers, domain.Offer{
			Pharmacy:  a.name,
			Title:     title,
			URL:       link,
			UnitPrice: price / float64(quantity),
			Price:     price,
			Quantity:  quantity,
		})
	})
	return offers
}

// productPagePrice reads the discounted price from a product detail page.
// It returns 0 when the page is unreachable or the product is out of stock.
func (a *NextDataAdapter) productPagePrice(ctx context.Context, link string) float64 {
	if link == "" {
		return 0
	}
	doc, raw, err := a.getDocument(ctx, link)
	if err != nil {
		a.log.Debug("product page unavailable", "source", a.name, "url", link, "error", err)
		return 0
	}

	data := nextData(doc)
	if data == nil {
		return 0
	}
	if status := findKey(data, "status"); status != nil && status != "IN_STOCK" && asFloat(status) != 1 {
		return 0
	}
	for _, marker := range outOfStockMarkers {
		if strings.Contains(raw, marker) {
			return 0
		}
	}

	candidates := []any{
		lookup(findKey(data, "price_aux"), "lmpm_value_to"),
		findKey(data, "value_to"),
		findKey(data, "priceService"),
	}
	for _, c := range candidates {
		if v := asFloat(c); v > 0 {
			return v
		}
	}
	return 0
}

type nextDataShippingRequest struct {
	Items []nextDataShippingItem `json:"items"`
	Zip   string                 `json:"zipCode"`
}

type nextDataShippingItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type nextDataShippingResponse struct {
	DeliveryOptions []struct {
		Price flexFloat `json:"price"`
	} `json:"deliveryOptions"`
}

// ShippingCost implements ShippingQuoter. The cheapest delivery option wins.
func (a *NextDataAdapter) ShippingCost(ctx context.Context, sku, postalCode string) (float64, error) {
	cep := cleanPostalCode(postalCode)
	if sku == "" || cep == "" {
		return 0, nil
	}

	req := nextDataShippingRequest{
		Items: []nextDataShippingItem{{SKU: sku, Quantity: 1}},
		Zip:   cep,
	}
	headers := map[string]string{"Referer": strings.TrimRight(a.baseURL, "/") + "/"}

	var resp nextDataShippingResponse
	u := strings.TrimRight(a.baseURL, "/") + nextDataShippingPath
	if err := a.postJSON(ctx, u, req, &resp, headers); err != nil {
		return 0, fmt.Errorf("calculating %s shipping: %w", a.name, err)
	}

	if len(resp.DeliveryOptions) == 0 {
		return 0, nil
	}
	cheapest := float64(resp.DeliveryOptions[0].Price)
	for _, opt := range resp.DeliveryOptions[1:] {
		cheapest = min(cheapest, float64(opt.Price))
	}
	return max(cheapest, 0), nil
}
