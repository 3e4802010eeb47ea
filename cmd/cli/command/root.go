package command

// root.go defines the root command for the bookplanner CLI.
// set up the global flags here.

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bookplanner/cmd/cli/command/client"
)

const defaultAPIURL = "http://localhost:8080"

var apiURL string // Global flag for API server URL

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bookplanner",
	Short: "bookplanner - personal reading tracker",
	Long: `bookplanner talks to a bookplanner API server. Use it to:
- Keep a list of books and log reading sessions
- Set monthly and weekly reading goals
- See reading statistics, speed and streaks
- Export, import and clear your data
- Listen for daily reading reminders

Use "bookplanner command -h" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaultURL := os.Getenv("API_URL")
	if defaultURL == "" {
		defaultURL = defaultAPIURL
	}
	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "API server URL (env API_URL)")
	rootCmd.SetErrPrefix(color.RedString("✗ Error:"))
}

func newClient() *client.HTTPClient {
	return client.NewHTTPClient(apiURL)
}

func success(format string, args ...any) {
	color.Green("✓ "+format, args...)
}

func staleWarning(stale bool) {
	if stale {
		color.Yellow("! Server database is unavailable, showing last cached data")
	}
}
