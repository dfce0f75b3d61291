package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/rx-price-tracker/internal/api/client"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Trigger an evaluation cycle on the server",
		Long: "Asks the server to search every storefront for every product now.\n" +
			"The command waits for the cycle to finish and prints its summary.",
		Example: `  rxp run
  rxp run --server http://tracker.local:8080 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := newClient().Run(cmd.Context())
			if errors.Is(err, apiclient.ErrCycleInProgress) {
				return fmt.Errorf("%w; try again when it finishes", err)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, summary)
			}
			return printSummary(out, summary)
		},
	}
}
