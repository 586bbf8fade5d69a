// Package cli wires the thumbfill commands with cobra.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/deusflow/thumbfill/internal/config"
	"github.com/deusflow/thumbfill/internal/logger"
)

var (
	debug bool
	cfg   *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "thumbfill",
	Short: "Backfill missing thumbnails in daily game news reports",
	Long: `Fills missing thumbnail URLs of AI-curated report items by matching each
item title against the collected news articles of the same report.
Optional history reports and saved RSS snapshots widen the candidate pool.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if debug {
		loaded.Debug = true
	}
	logger.Init(loaded.Debug, cmd.ErrOrStderr())
	cfg = loaded
	return nil
}

// Execute runs the root command. Cancelling ctx stops scheduling new files.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
