package cli

import (
	"github.com/spf13/cobra"

	"github.com/deusflow/thumbfill/internal/app"
	"github.com/deusflow/thumbfill/internal/logger"
)

var (
	fixDryRun bool
	fixJobs   int
	fixNews   []string
	fixFeeds  string
	fixJSON   bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [files...]",
	Short: "Backfill missing thumbnails",
	Long: `Turns empty thumbnails into null and fills missing ones from the best
matching news article. Files are rewritten only when something changed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "report changes without writing files")
	fixCmd.Flags().IntVarP(&fixJobs, "jobs", "j", 0, "files processed in parallel (default from THUMBFILL_JOBS or 1)")
	fixCmd.Flags().StringArrayVar(&fixNews, "news", nil, "extra report file whose news join the pool (repeatable)")
	fixCmd.Flags().StringVar(&fixFeeds, "feeds", "", "YAML file listing saved RSS snapshots")
	fixCmd.Flags().BoolVar(&fixJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	if fixDryRun {
		cfg.DryRun = true
	}
	if fixJobs > 0 {
		cfg.Jobs = fixJobs
	}
	applyPoolFlags(fixNews, fixFeeds)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	ledger, err := app.OpenLedger(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := ledger.Close(); err != nil {
			logger.Warn("failed to close ledger", "error", err)
		}
	}()

	runner, err := app.NewRunner(cfg, ledger)
	if err != nil {
		return err
	}

	results, sum, err := runner.Fix(ctx, args)
	if err != nil {
		return err
	}

	if fixJSON {
		return app.WriteFixJSON(cmd.OutOrStdout(), results, sum, runner.Metrics().GetStats())
	}
	app.WriteFixReport(cmd.OutOrStdout(), results, sum)
	return nil
}

func applyPoolFlags(news []string, feeds string) {
	if len(news) > 0 {
		cfg.NewsFiles = append(cfg.NewsFiles, news...)
	}
	if feeds != "" {
		cfg.FeedsConfigPath = feeds
	}
}
