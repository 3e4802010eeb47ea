package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookplanner/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reading statistics",
	Example: `  bookplanner stats
  bookplanner stats --range month --category Fiction`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rangeName, _ := cmd.Flags().GetString("range")
		category, _ := cmd.Flags().GetString("category")

		report, err := newClient().Stats(rangeName, category)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}
		staleWarning(report.Stale)

		st := report.Stats
		fmt.Println("All books")
		fmt.Println("─────────────────────────────────────────")
		fmt.Printf("Books:      %d total, %d completed, %d reading, %d to read\n",
			st.TotalBooks, st.CompletedBooks, st.ReadingBooks, st.ToReadBooks)
		fmt.Printf("Pages:      %d read of %d\n", st.CompletedPages, st.TotalPages)
		fmt.Printf("Time:       %s\n", formatMinutes(st.TotalReadingTime))
		fmt.Printf("Speed:      %d pages/hour\n", st.AverageReadingSpeed)
		fmt.Printf("Streak:     %d days\n", report.Streak)

		if fs := report.FilteredStats; fs != nil {
			fmt.Printf("\nSelected (%s, %s):\n", report.Range, report.Category)
			fmt.Printf("  Books: %d, %d completed\n", fs.TotalBooks, fs.CompletedBooks)
			fmt.Printf("  Pages: %d read, Time: %s, Speed: %d pages/hour\n",
				fs.CompletedPages, formatMinutes(fs.TotalReadingTime), fs.AverageReadingSpeed)
		}

		fmt.Println("\nGoals:")
		printProgress("Monthly books", report.GoalProgress.MonthlyBooks)
		printProgress("Monthly pages", report.GoalProgress.MonthlyPages)
		printProgress("Weekly books", report.GoalProgress.WeeklyBooks)
		printProgress("Weekly pages", report.GoalProgress.WeeklyPages)
		fmt.Printf("  Daily target: %d pages, %.1f books\n", report.DailyTargets.Pages, report.DailyTargets.Books)

		fmt.Println("\nMilestones:")
		printProgress("Speed", report.Milestones.Speed)
		printProgress("Streak", report.Milestones.Streak)

		in := report.Insights
		if in.TotalSessions > 0 {
			fmt.Println("\nInsights:")
			fmt.Printf("  Most active day: %s\n", in.MostActiveDay)
			fmt.Printf("  Sessions: %d, avg %.0f min\n", in.TotalSessions, in.AverageSessionMinutes)
			fmt.Printf("  Completion rate: %.0f%%\n", in.CompletionRate)
		}
		if len(in.Categories) > 0 {
			fmt.Println("\nCategories:")
			for _, c := range in.Categories {
				fmt.Printf("  %-20s %3d %s %d%%\n", c.Category, c.Count, progressBar(float64(c.Percent), 10), c.Percent)
			}
		}
		return nil
	},
}

var speedCmd = &cobra.Command{
	Use:   "speed",
	Short: "Show reading speed per session",
	RunE: func(cmd *cobra.Command, args []string) error {
		last, _ := cmd.Flags().GetInt("last")

		resp, err := newClient().Speed(last)
		if err != nil {
			return fmt.Errorf("failed to get reading speed: %w", err)
		}
		staleWarning(resp.Stale)

		if len(resp.Data) == 0 {
			fmt.Println("No reading sessions yet.")
			return nil
		}
		for _, s := range resp.Data {
			fmt.Printf("%s  %4d pages  %4d min  %6.1f p/h\n", s.Date, s.Pages, s.Minutes, s.Speed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd, speedCmd)

	statsCmd.Flags().String("range", "", "Narrow to a time range: week, month, year")
	statsCmd.Flags().String("category", "", "Narrow to one category")
	speedCmd.Flags().Int("last", 0, "Only show the most recent N sessions")
}

func printProgress(label string, p stats.Progress) {
	mark := " "
	if p.Achieved {
		mark = "✓"
	}
	fmt.Printf("  %-14s %5d / %-5d %s %3d%% %s\n", label, p.Current, p.Target, progressBar(float64(p.Percent), 10), p.Percent, mark)
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}
