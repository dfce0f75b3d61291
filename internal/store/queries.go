package store

import domain "github.com/donaldgifford/rx-price-tracker/pkg/types"

// SQL query constants organized by entity.
// Both dialects share these statements. Parameters are named (@name) so
// pgx.NamedArgs and database/sql's sql.Named bind them the same way.

// History queries.
const (
	queryInsertPriceRecord = `
		INSERT INTO price_history (
			run_id, timestamp, pharmacy, product_name, offer_title, url,
			unit_price, total_price, shipping_cost, total_effective_price,
			is_kit, kit_size, is_best_offer, notified
		) VALUES (
			@run_id, @timestamp, @pharmacy, @product_name, @offer_title, @url,
			@unit_price, @total_price, @shipping_cost, @total_effective_price,
			@is_kit, @kit_size, @is_best_offer, @notified
		)
		RETURNING id`

	queryLatestBestOffers = `
		SELECT ` + historyColumns + `
		FROM price_history h
		WHERE h.is_best_offer = TRUE
			AND h.id = (
				SELECT MAX(h2.id) FROM price_history h2
				WHERE h2.product_name = h.product_name AND h2.is_best_offer = TRUE
			)
		ORDER BY h.product_name`
)

// Notification state queries.
const (
	queryUpsertNotificationState = `
		INSERT INTO notification_state (product_name, pharmacy, price, notified_at)
		VALUES (@product_name, @pharmacy, @price, @notified_at)
		ON CONFLICT (product_name) DO UPDATE SET
			pharmacy = EXCLUDED.pharmacy,
			price = EXCLUDED.price,
			notified_at = EXCLUDED.notified_at`

	queryGetNotificationState = `
		SELECT product_name, pharmacy, price, notified_at
		FROM notification_state
		WHERE product_name = @product_name`

	queryListNotificationStates = `
		SELECT product_name, pharmacy, price, notified_at
		FROM notification_state
		ORDER BY product_name`
)

// priceRecordArgs maps a record onto the named parameters of
// queryInsertPriceRecord.
func priceRecordArgs(r *domain.PriceRecord) map[string]any {
	return map[string]any{
		"run_id":                r.RunID,
		"timestamp":             r.Timestamp.UTC(),
		"pharmacy":              r.Pharmacy,
		"product_name":          r.ProductName,
		"offer_title":           r.OfferTitle,
		"url":                   r.URL,
		"unit_price":            r.UnitPrice,
		"total_price":           r.TotalPrice,
		"shipping_cost":         r.ShippingCost,
		"total_effective_price": r.TotalEffectivePrice,
		"is_kit":                r.IsKit,
		"kit_size":              r.KitSize,
		"is_best_offer":         r.IsBestOffer,
		"notified":              r.Notified,
	}
}

func notificationStateArgs(s *domain.NotificationState) map[string]any {
	return map[string]any{
		"product_name": s.ProductName,
		"pharmacy":     s.Pharmacy,
		"price":        s.Price,
		"notified_at":  s.NotifiedAt.UTC(),
	}
}
