package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	var asJSON bool

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one evaluation cycle and exit",
		Long: "Searches every enabled storefront for every configured product once, " +
			"records history, sends any alerts, and exits. Suitable for an external cron.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd, asJSON)
		},
	}
	runCmd.Flags().BoolVar(&asJSON, "json", false, "print the cycle summary as JSON")

	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, asJSON bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfgFile)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.close(closeCtx); err != nil {
			a.log.Warn("shutdown incomplete", "error", err)
		}
	}()

	summary, err := a.engine.RunCycle(ctx)
	if err != nil {
		return fmt.Errorf("running cycle: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	_, err = fmt.Fprintf(out,
		"run %s: %d evaluated, %d failed, %d offers recorded, %d alerts sent in %s\n",
		summary.RunID,
		summary.ProductsEvaluated,
		summary.ProductsFailed,
		summary.OffersRecorded,
		summary.AlertsSent,
		summary.Duration.Round(time.Millisecond),
	)
	if err == nil && summary.ProductsFailed > 0 {
		fmt.Fprintln(os.Stderr, "some products failed; see log for details")
	}
	return err
}
