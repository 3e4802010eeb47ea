package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/models"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Reading goal commands",
}

var showGoalsCmd = &cobra.Command{
	Use:   "show",
	Short: "Show goals and today's targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		resp, err := c.GetGoals()
		if err != nil {
			return fmt.Errorf("failed to get goals: %w", err)
		}
		staleWarning(resp.Stale)
		printGoals(resp.Goals)

		daily, err := c.DailyTargets()
		if err != nil {
			return fmt.Errorf("failed to get daily targets: %w", err)
		}
		fmt.Printf("Today:   %d pages, %.1f books\n", daily.Pages, daily.Books)
		return nil
	},
}

var setGoalsCmd = &cobra.Command{
	Use:   "set",
	Short: "Change monthly or weekly goals",
	Example: `  bookplanner goals set --period monthly --books 4
  bookplanner goals set --period weekly --pages 300`,
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")
		if period != "monthly" && period != "weekly" {
			return fmt.Errorf("--period must be monthly or weekly")
		}

		var patch dto.GoalTargetPatch
		if cmd.Flags().Changed("books") {
			v, _ := cmd.Flags().GetInt("books")
			patch.Books = &v
		}
		if cmd.Flags().Changed("pages") {
			v, _ := cmd.Flags().GetInt("pages")
			patch.Pages = &v
		}
		if patch.Books == nil && patch.Pages == nil {
			return fmt.Errorf("nothing to change, pass --books and/or --pages")
		}

		resp, err := newClient().PatchGoals(period, patch)
		if err != nil {
			return fmt.Errorf("failed to update goals: %w", err)
		}
		success("Goals updated!")
		printGoals(resp.Goals)
		return nil
	},
}

var resetGoalsCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().ResetGoals()
		if err != nil {
			return fmt.Errorf("failed to reset goals: %w", err)
		}
		success("Goals reset to defaults")
		printGoals(resp.Goals)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(goalsCmd)
	goalsCmd.AddCommand(showGoalsCmd, setGoalsCmd, resetGoalsCmd)

	setGoalsCmd.Flags().String("period", "", "monthly or weekly (required)")
	setGoalsCmd.Flags().Int("books", 0, "Books target")
	setGoalsCmd.Flags().Int("pages", 0, "Pages target")
	_ = setGoalsCmd.MarkFlagRequired("period")
}

func printGoals(g models.Goals) {
	fmt.Printf("Monthly: %d books, %d pages\n", g.Monthly.Books, g.Monthly.Pages)
	fmt.Printf("Weekly:  %d books, %d pages\n", g.Weekly.Books, g.Weekly.Pages)
}
