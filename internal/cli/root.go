// Package cli provides the command-line interface for the lead
// generation pipeline.
package cli

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/law-makers/leadgen/internal/app"
	"github.com/law-makers/leadgen/internal/config"
	"github.com/law-makers/leadgen/internal/ui"
)

// globalApp is the lazily-initialized application shared by all commands.
var globalApp *app.Application

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "leadgen",
	Short:   "Registry-driven lead generation for agency outreach",
	Long:    `Leadgen crawls the UK company registry and agency directories, enriches candidates with websites and contacts, scores them against the target profile, and exports ranked leads with personalized outreach drafts.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(helpFunc)

	// Lazily initialize the application so -h/--help never starts one.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if globalApp != nil {
			return nil
		}
		cfg, err := config.Load(rootCmd)
		if err != nil {
			return err
		}
		if cfg.ExhaustiveMode || cfg.RandomLocation || cfg.RandomIndustry {
			data, err := config.LoadExpandedData(cfg.ExpandedFile)
			if err != nil {
				return fmt.Errorf("load expanded data: %w", err)
			}
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			cfg.ApplyExpandedData(data, rng, zerolog.New(zerolog.NewConsoleWriter()))
		}
		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		globalApp = a
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if globalApp == nil {
			return
		}
		_ = globalApp.Close()
		globalApp = nil
	}
}

// helpFunc prints colorized help: description, usage, commands, flags.
func helpFunc(cmd *cobra.Command, args []string) {
	out := os.Stdout
	fmt.Fprintf(out, "\n%s%s%s\n", ui.ColorBold+ui.ColorCyan, strings.ToUpper(cmd.Name()), ui.ColorReset)
	if cmd.Short != "" {
		fmt.Fprintln(out, cmd.Short)
	}
	if cmd.Long != "" && cmd.Long != cmd.Short {
		fmt.Fprintf(out, "\n%s\n", cmd.Long)
	}

	fmt.Fprintf(out, "\n%s\n", ui.Heading("Usage"))
	if cmd.Runnable() {
		fmt.Fprintf(out, "  %s%s%s\n", ui.ColorCyan, cmd.UseLine(), ui.ColorReset)
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(out, "  %s%s%s %s<command>%s [flags]\n",
			ui.ColorCyan, cmd.CommandPath(), ui.ColorReset,
			ui.ColorYellow, ui.ColorReset)

		fmt.Fprintf(out, "\n%s\n", ui.Heading("Commands"))
		maxLen := 0
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() && len(c.Name()) > maxLen {
				maxLen = len(c.Name())
			}
		}
		for _, c := range cmd.Commands() {
			if !c.IsAvailableCommand() || c.Name() == "help" {
				continue
			}
			fmt.Fprintf(out, "  %s%-*s%s  %s%s%s\n",
				ui.ColorCyan, maxLen, c.Name(), ui.ColorReset,
				ui.ColorDim, c.Short, ui.ColorReset)
		}
	}

	if cmd.HasAvailableLocalFlags() {
		fmt.Fprintf(out, "\n%s\n", ui.Heading("Flags"))
		fmt.Fprint(out, cmd.LocalFlags().FlagUsages())
	}
	if cmd.HasAvailableInheritedFlags() {
		fmt.Fprintf(out, "\n%s\n", ui.Heading("Global Flags"))
		fmt.Fprint(out, cmd.InheritedFlags().FlagUsages())
	}
	fmt.Fprintln(out)
}
