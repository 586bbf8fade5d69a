package cli

import (
	"github.com/spf13/cobra"

	"github.com/deusflow/thumbfill/internal/app"
)

var (
	auditNews  []string
	auditFeeds string
)

var auditCmd = &cobra.Command{
	Use:   "audit [files...]",
	Short: "Check existing thumbnails against their news articles",
	Long: `Grades every item thumbnail by how well its title matches the article
the thumbnail came from. Files are never modified.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringArrayVar(&auditNews, "news", nil, "extra report file whose news join the pool (repeatable)")
	auditCmd.Flags().StringVar(&auditFeeds, "feeds", "", "YAML file listing saved RSS snapshots")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	applyPoolFlags(auditNews, auditFeeds)

	runner, err := app.NewRunner(cfg, nil)
	if err != nil {
		return err
	}

	audits, err := runner.Audit(cmd.Context(), args)
	if err != nil {
		return err
	}
	app.WriteAuditReport(cmd.OutOrStdout(), audits)
	return nil
}
