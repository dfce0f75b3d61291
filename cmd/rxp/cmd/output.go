package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	apiclient "github.com/donaldgifford/rx-price-tracker/internal/api/client"
	domain "github.com/donaldgifford/rx-price-tracker/pkg/types"
)

const timeLayout = "2006-01-02 15:04"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProductsTable(w io.Writer, products []apiclient.ProductStatus) error {
	tw := newTabWriter(w)
	tw.writef("NAME\tSEARCH\tTHRESHOLD\tSTATE\tSNOOZE UNTIL\n")
	for i := range products {
		p := &products[i]
		snooze := p.SnoozeUntil
		if snooze == "" {
			snooze = "-"
		}
		if p.SnoozeError != "" {
			snooze += " (invalid)"
		}
		tw.writef("%s\t%s\tR$ %.2f\t%s\t%s\n",
			p.Name,
			p.SearchTerm,
			p.ThresholdPrice,
			p.State,
			snooze,
		)
	}
	return tw.finish()
}

func printHistoryTable(w io.Writer, records []domain.PriceRecord) error {
	tw := newTabWriter(w)
	tw.writef("TIME\tPRODUCT\tPHARMACY\tOFFER\tBOX\tSHIPPING\tUNIT\tQTY\tBEST\tNOTIFIED\n")
	for i := range records {
		r := &records[i]
		tw.writef("%s\t%s\t%s\t%s\tR$ %.2f\tR$ %.2f\tR$ %.4f\t%d\t%s\t%s\n",
			r.Timestamp.Local().Format(timeLayout),
			r.ProductName,
			r.Pharmacy,
			truncate(r.OfferTitle, 40),
			r.TotalPrice,
			r.ShippingCost,
			r.TotalEffectivePrice,
			r.KitSize,
			mark(r.IsBestOffer),
			mark(r.Notified),
		)
	}
	return tw.finish()
}

func printNotificationsTable(w io.Writer, states []domain.NotificationState) error {
	tw := newTabWriter(w)
	tw.writef("PRODUCT\tPHARMACY\tPRICE\tNOTIFIED AT\n")
	for i := range states {
		s := &states[i]
		tw.writef("%s\t%s\tR$ %.2f\t%s\n",
			s.ProductName,
			s.Pharmacy,
			s.Price,
			s.NotifiedAt.Local().Format(timeLayout),
		)
	}
	return tw.finish()
}

func printSummary(w io.Writer, s *domain.CycleSummary) error {
	tw := newTabWriter(w)
	tw.writef("Run ID:\t%s\n", s.RunID)
	tw.writef("Evaluated:\t%d\n", s.ProductsEvaluated)
	tw.writef("Failed:\t%d\n", s.ProductsFailed)
	tw.writef("Offers recorded:\t%d\n", s.OffersRecorded)
	tw.writef("Alerts sent:\t%d\n", s.AlertsSent)
	tw.writef("Duration:\t%s\n", s.Duration.Round(time.Millisecond))
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func mark(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
