package stats

import (
	"math"

	"bookplanner/internal/microservices/http-api/models"
)

const (
	// SpeedMilestone is the reading speed, in pages per hour, treated as a milestone.
	SpeedMilestone = 50
	// StreakMilestone is the number of consecutive reading days treated as a milestone.
	StreakMilestone = 7
)

type Progress struct {
	Current  int  `json:"current"`
	Target   int  `json:"target"`
	Percent  int  `json:"percent"`
	Achieved bool `json:"achieved"`
}

func newProgress(current, target int) Progress {
	p := Progress{Current: current, Target: target}
	if target > 0 {
		p.Percent = int(math.Round(float64(current) / float64(target) * 100))
		p.Achieved = current >= target
	}
	return p
}

type GoalProgress struct {
	MonthlyBooks Progress `json:"monthlyBooks"`
	MonthlyPages Progress `json:"monthlyPages"`
	WeeklyBooks  Progress `json:"weeklyBooks"`
	WeeklyPages  Progress `json:"weeklyPages"`
}

// CompareGoals measures a stats snapshot against the configured targets.
func CompareGoals(st ReadingStats, goals models.Goals) GoalProgress {
	return GoalProgress{
		MonthlyBooks: newProgress(st.MonthlyBooks, goals.Monthly.Books),
		MonthlyPages: newProgress(st.MonthlyPages, goals.Monthly.Pages),
		WeeklyBooks:  newProgress(st.WeeklyBooks, goals.Weekly.Books),
		WeeklyPages:  newProgress(st.WeeklyPages, goals.Weekly.Pages),
	}
}

type DailyTargets struct {
	Pages int     `json:"pages"`
	Books float64 `json:"books"`
}

// DailyTarget spreads the weekly goal over seven days, rounding pages up.
func DailyTarget(goals models.Goals) DailyTargets {
	return DailyTargets{
		Pages: int(math.Ceil(float64(goals.Weekly.Pages) / 7)),
		Books: round1(float64(goals.Weekly.Books) / 7),
	}
}

type Milestones struct {
	Speed  Progress `json:"speed"`
	Streak Progress `json:"streak"`
}

func ComputeMilestones(st ReadingStats, streak int) Milestones {
	return Milestones{
		Speed:  newProgress(st.AverageReadingSpeed, SpeedMilestone),
		Streak: newProgress(streak, StreakMilestone),
	}
}
