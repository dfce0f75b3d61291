package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Show monitored products",
		Long:  "Show the medications the server monitors, their alert thresholds, and snooze state.",
	}

	productsRoot.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List monitored products",
		Example: `  rxp products list
  rxp products list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := newClient().ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, products)
			}
			if len(products) == 0 {
				fmt.Fprintln(out, "No products configured.")
				return nil
			}
			return printProductsTable(out, products)
		},
	})

	return productsRoot
}
