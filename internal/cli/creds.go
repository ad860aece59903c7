package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/law-makers/leadgen/internal/creds"
	"github.com/law-makers/leadgen/internal/ui"
)

// credKeys maps the CLI credential names to store keys.
var credKeys = map[string]string{
	"telegram": creds.TelegramToken,
	"github":   creds.GitHubToken,
}

var credsCmd = &cobra.Command{
	Use:   "creds",
	Short: "Manage notification credentials in the OS keyring",
}

var credsSetCmd = &cobra.Command{
	Use:   "set <telegram|github>",
	Short: "Store a notification token",
	Example: `  # Store the Telegram bot token (prompted on stdin)
  leadgen creds set telegram`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, ok := credKeys[args[0]]
		if !ok {
			return fmt.Errorf("unknown credential %q (want telegram or github)", args[0])
		}

		fmt.Printf("Enter %s token: ", args[0])
		reader := bufio.NewReader(os.Stdin)
		token, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return fmt.Errorf("empty token")
		}

		if err := globalApp.Creds.Set(key, token); err != nil {
			return err
		}
		fmt.Println(ui.Success("Stored " + args[0] + " token"))
		return nil
	},
}

var credsDeleteCmd = &cobra.Command{
	Use:   "delete <telegram|github>",
	Short: "Remove a stored token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, ok := credKeys[args[0]]
		if !ok {
			return fmt.Errorf("unknown credential %q (want telegram or github)", args[0])
		}
		if err := globalApp.Creds.Delete(key); err != nil {
			return err
		}
		fmt.Println(ui.Success("Removed " + args[0] + " token"))
		return nil
	},
}

func init() {
	credsCmd.AddCommand(credsSetCmd)
	credsCmd.AddCommand(credsDeleteCmd)
	rootCmd.AddCommand(credsCmd)
}
