package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/law-makers/leadgen/internal/audit"
	"github.com/law-makers/leadgen/internal/ui"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Score SIC selectors against a sample of live company pages",
	Long:  `Audit fetches a fixed panel of company profiles, measures how often each known selector extracts a valid SIC code, and writes a recommended selector override plus a markdown report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := globalApp

		auditor := audit.NewSelectorAuditor(a.Fetcher, a.Selectors, a.Config.MaxWorkers, a.Logger)
		report, err := auditor.Run(cmd.Context(), args)
		if err != nil {
			return err
		}

		recommendedPath := filepath.Join(a.Config.ExportDir, "recommended_sic_selectors.json")
		if err := report.WriteRecommended(recommendedPath); err != nil {
			return fmt.Errorf("write recommended selectors: %w", err)
		}
		reportPath := filepath.Join(a.Config.ExportDir, "sic_audit_report.md")
		if err := report.WriteMarkdown(reportPath); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		fmt.Printf("\n%s\n", ui.Bold("SIC Selector Audit"))
		fmt.Printf("Fetched %d of %d sample pages\n\n", report.Fetched, report.Sampled)
		for _, s := range report.Stats {
			fmt.Printf("  %-45s %3.0f%% (%d codes)\n", s.Selector, s.Rate*100, s.Codes)
		}
		fmt.Printf("\n%s\n  %s\n  %s\n\n", ui.Bold("Written"), recommendedPath, reportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
