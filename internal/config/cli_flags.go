package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("json", false, "Emit JSON logs")
	cmd.PersistentFlags().String("location", DefaultTargetLocation, "Target location filter")
	cmd.PersistentFlags().String("industry", DefaultTargetIndustry, "Target industry description")
	cmd.PersistentFlags().IntP("count", "n", DefaultTargetCount, "Target number of leads")
	cmd.PersistentFlags().String("sic", "", "Comma-separated target SIC codes")
	cmd.PersistentFlags().Bool("exhaustive", false, "Use the exhaustive alphabetical sweep instead of targeted queries")
	cmd.PersistentFlags().Bool("ignore-robots", false, "Skip robots.txt checks during enrichment")
	cmd.PersistentFlags().String("delay", DefaultRequestDelay.String(), "Minimum delay between requests to the same domain")
	cmd.PersistentFlags().Int("workers", DefaultMaxWorkers, "Concurrent enrichment workers")
	cmd.PersistentFlags().String("selectors", DefaultSelectorsFile, "Path to the selector override file")
	cmd.PersistentFlags().String("export-dir", DefaultExportDir, "Directory for exported results")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().String("timeout", DefaultHTTPTimeout.String(), "HTTP timeout for enrichment fetches")
	cmd.PersistentFlags().Bool("random-location", false, "Pick a random location from the expanded data file")
	cmd.PersistentFlags().Bool("random-industry", false, "Pick random SIC codes from the expanded data file")
	cmd.PersistentFlags().Bool("headful", false, "Run the browser with a visible window")
}
