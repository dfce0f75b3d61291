package store

import (
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row, and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPriceRecord scans a row selected with historyColumns.
func scanPriceRecord(row rowScanner, r *domain.PriceRecord) error {
	if err := row.Scan(
		&r.ID, &r.RunID, &r.Timestamp, &r.Pharmacy, &r.ProductName, &r.OfferTitle, &r.URL,
		&r.UnitPrice, &r.TotalPrice, &r.ShippingCost, &r.TotalEffectivePrice,
		&r.IsKit, &r.KitSize, &r.IsBestOffer, &r.Notified,
	); err != nil {
		return err
	}
	r.Timestamp = r.Timestamp.UTC()
	return nil
}

func scanNotificationState(row rowScanner, st *domain.NotificationState) error {
	if err := row.Scan(&st.ProductName, &st.Pharmacy, &st.Price, &st.NotifiedAt); err != nil {
		return err
	}
	st.NotifiedAt = st.NotifiedAt.UTC()
	return nil
}
