package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/models"
	"bookplanner/internal/stats"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Reading session commands",
}

var addSessionCmd = &cobra.Command{
	Use:   "add [book-id]",
	Short: "Log a reading session for a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseBookID(args[0])
		if err != nil {
			return err
		}
		pages, _ := cmd.Flags().GetInt("pages")
		minutes, _ := cmd.Flags().GetInt("minutes")
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = time.Now().Format(stats.DateLayout)
		}

		book, err := newClient().AddSession(id, dto.AddSessionRequest{Date: date, Pages: pages, Minutes: minutes})
		if err != nil {
			return fmt.Errorf("failed to log session: %w", err)
		}

		success("Logged %d pages in %d minutes on %s", pages, minutes, date)
		fmt.Printf("%s: %d/%d %s\n", book.Title, book.CurrentPage, book.TotalPages, progressBar(book.Progress(), 20))
		if book.Status == models.StatusCompleted {
			success("Finished %q!", book.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(addSessionCmd)

	addSessionCmd.Flags().Int("pages", 0, "Pages read (required)")
	addSessionCmd.Flags().Int("minutes", 0, "Minutes spent (required)")
	addSessionCmd.Flags().String("date", "", "Session date YYYY-MM-DD (default today)")
	_ = addSessionCmd.MarkFlagRequired("pages")
	_ = addSessionCmd.MarkFlagRequired("minutes")
}
