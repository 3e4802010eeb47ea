package command

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Export, import or clear your reading data",
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		raw, err := newClient().Export()
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		if out == "" {
			fmt.Println(string(raw))
			return nil
		}
		if out == "." {
			out = fmt.Sprintf("bookplanner-%s.json", time.Now().Format("2006-01-02"))
		}
		if err := os.WriteFile(out, raw, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		success("Exported to %s", out)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace all data with an exported JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		if !json.Valid(raw) {
			return fmt.Errorf("%s is not valid JSON", args[0])
		}

		summary, err := newClient().Import(raw)
		if err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}
		success("Imported %d books", summary.Books)
		if summary.Goals {
			fmt.Println("Goals restored.")
		}
		if summary.Notifications {
			fmt.Println("Notification preference restored.")
		}
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all books, goals and settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm("This deletes all books, sessions and goals. Continue?") {
			fmt.Println("Aborted.")
			return nil
		}

		if err := newClient().ClearData(); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
		success("All data cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dataCmd)
	dataCmd.AddCommand(exportCmd, importCmd, clearCmd)

	exportCmd.Flags().StringP("out", "o", "", `Write to file instead of stdout ("." for a dated file name)`)
	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
