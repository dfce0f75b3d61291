package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/rx-price-tracker/internal/api/client"
)

func historyCmd() *cobra.Command {
	historyRoot := &cobra.Command{
		Use:   "history",
		Short: "Query price history",
		Long:  "Query the offers recorded by past evaluation cycles.",
	}

	historyRoot.AddCommand(historyListCmd(), historyLatestCmd())

	return historyRoot
}

func historyListCmd() *cobra.Command {
	var params apiclient.ListHistoryParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded offers, newest first",
		Example: `  rxp history list --product "Dienogeste 2mg" --best-only
  rxp history list --pharmacy Drogasil --limit 20 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().ListHistory(cmd.Context(), &params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, resp)
			}
			if len(resp.Records) == 0 {
				fmt.Fprintln(out, "No history found.")
				return nil
			}
			if err := printHistoryTable(out, resp.Records); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nShowing %d of %d records.\n", len(resp.Records), resp.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Product, "product", "", "filter by product name")
	cmd.Flags().StringVar(&params.Pharmacy, "pharmacy", "", "filter by pharmacy")
	cmd.Flags().StringVar(&params.RunID, "run-id", "", "filter by evaluation cycle")
	cmd.Flags().BoolVar(&params.BestOnly, "best-only", false, "only offers that won their cycle")
	cmd.Flags().IntVar(&params.Limit, "limit", 50, "maximum rows to return")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "rows to skip")

	return cmd
}

func historyLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Show the latest best offer per product",
		RunE: func(cmd *cobra.Command, _ []string) error {
			offers, err := newClient().LatestOffers(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, offers)
			}
			if len(offers) == 0 {
				fmt.Fprintln(out, "No offers recorded yet.")
				return nil
			}
			return printHistoryTable(out, offers)
		},
	}
}
