package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/law-makers/leadgen/internal/ui"
	"github.com/law-makers/leadgen/pkg/models"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Crawl the registry, enrich and rank leads, export the results",
	Example: `  # Targeted crawl for London marketing agencies
  leadgen run --location London --count 50

  # Exhaustive A-Z sweep with randomized targeting
  leadgen run --exhaustive --random-location`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := globalApp

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		orch, err := a.Orchestrator(ctx)
		if err != nil {
			return fmt.Errorf("initialize pipeline: %w", err)
		}

		leads, err := orch.Run(ctx)
		if err != nil {
			return err
		}
		if len(leads) == 0 {
			fmt.Println(ui.Info("No qualifying leads found."))
			return nil
		}

		messages := a.Outreach.Messages(leads)

		csvPath, err := a.Exporter.WriteLeadsCSV(leads)
		if err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		jsonPath, err := a.Exporter.WriteLeadsJSON(leads)
		if err != nil {
			return fmt.Errorf("export json: %w", err)
		}
		campaignsPath, err := a.Exporter.WriteCampaignsJSON(messages)
		if err != nil {
			return fmt.Errorf("export campaigns: %w", err)
		}

		telegram, github, err := a.Notifiers()
		if err != nil {
			a.Logger.Warn().Err(err).Msg("Credential lookup failed, skipping notifications")
		} else {
			if err := telegram.SendSummary(ctx, leads); err != nil {
				a.Logger.Warn().Err(err).Msg("Telegram notification failed")
			}
			if err := github.UpdatePortfolio(ctx, leads); err != nil {
				a.Logger.Warn().Err(err).Msg("Portfolio update failed")
			}
		}

		printSummary(os.Stdout, leads, csvPath, jsonPath, campaignsPath)
		return nil
	},
}

// printSummary writes the end-of-run report.
func printSummary(w io.Writer, leads []*models.Lead, paths ...string) {
	fmt.Fprintf(w, "\n%s\n", ui.Bold("Lead Generation Complete"))
	fmt.Fprintf(w, "%s\n\n", ui.Success(fmt.Sprintf("%d qualified leads", len(leads))))

	top := leads
	if len(top) > 10 {
		top = top[:10]
	}
	for i, lead := range top {
		contact := ""
		if lead.CEOName != "" {
			contact = " - " + lead.CEOName
		}
		fmt.Fprintf(w, "  %2d. %s%s (score %d, icp %.2f)\n",
			i+1, lead.CompanyName, contact, lead.QualityScore, lead.ICPMatch)
	}

	fmt.Fprintf(w, "\n%s\n", ui.Bold("Exports"))
	for _, p := range paths {
		if p != "" {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(runCmd)
}
