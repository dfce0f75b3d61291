package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func notificationsCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "notifications",
		Short: "Show alert state",
		Long: "Show the last alert sent per product. A new alert is only sent when the\n" +
			"best offer moves to another pharmacy or its price changes.",
	}

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the last alert per product",
		RunE: func(cmd *cobra.Command, _ []string) error {
			states, err := newClient().ListNotifications(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, states)
			}
			if len(states) == 0 {
				fmt.Fprintln(out, "No alerts sent yet.")
				return nil
			}
			return printNotificationsTable(out, states)
		},
	})

	return root
}
