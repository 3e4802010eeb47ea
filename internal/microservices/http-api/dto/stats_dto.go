package dto

import "bookplanner/internal/stats"

type StatsQuery struct {
	Range    string `form:"range"`
	Category string `form:"category"`
}

type SpeedQuery struct {
	Last int `form:"last" binding:"min=0"`
}

// StatsReport is everything the statistics screen shows. Stats always
// covers every book; FilteredStats is set only when a range or category
// narrows the selection.
type StatsReport struct {
	Range         stats.Range         `json:"range"`
	Category      string              `json:"category"`
	Stats         stats.ReadingStats  `json:"stats"`
	FilteredStats *stats.ReadingStats `json:"filteredStats,omitempty"`
	GoalProgress stats.GoalProgress `json:"goalProgress"`
	DailyTargets stats.DailyTargets `json:"dailyTargets"`
	Streak       int                `json:"readingStreak"`
	Milestones   stats.Milestones   `json:"milestones"`
	Insights     stats.Insights     `json:"insights"`
	GeneratedAt  string             `json:"generatedAt"`
	Stale        bool               `json:"stale"`
}

type SpeedResponse struct {
	Data  []stats.SpeedSample `json:"data"`
	Stale bool                `json:"stale"`
}
