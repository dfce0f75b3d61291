// Package cmd implements the CLI commands for rx-price-tracker.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "rx-price-tracker",
	Short: "Monitor pharmacy storefronts for medication price drops",
	Long: "Searches Brazilian pharmacy storefronts for configured medications, " +
		"normalizes kit and promotion pricing to a per-unit cost including shipping, " +
		"records price history, and alerts when the best box price drops below a threshold.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
