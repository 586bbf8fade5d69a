package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deusflow/thumbfill/internal/app"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent runs from the ledger",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "maximum number of records")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	ledger, err := app.OpenLedger(ctx, cfg)
	if err != nil {
		return err
	}
	defer ledger.Close()

	recs, err := ledger.Recent(ctx, runsLimit)
	if err != nil {
		return fmt.Errorf("failed to read ledger: %w", err)
	}
	if len(recs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, r := range recs {
		mode := "saved"
		switch {
		case r.DryRun:
			mode = "dry-run"
		case !r.Saved:
			mode = "unchanged"
		}
		cmd.Printf("%s  %-9s  fixed %d/%d  null %d  %s  %s\n",
			r.RanAt.Format("2006-01-02 15:04:05"), mode, r.Fixed, r.Checked, r.EmptyToNull, r.Digest, r.File)
	}
	return nil
}
