package service

import (
	"context"
	"time"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/stats"
)

type StatsService interface {
	Report(ctx context.Context, query dto.StatsQuery) (*dto.StatsReport, error)
	Speed(ctx context.Context, query dto.SpeedQuery) (*dto.SpeedResponse, error)
}

type statsService struct {
	snapshots *Snapshots
	now       Clock
	loc       *time.Location
}

func NewStatsService(snapshots *Snapshots, now Clock, loc *time.Location) StatsService {
	return &statsService{snapshots: snapshots, now: now, loc: loc}
}

// Report computes statistics over every book. When a range other than all
// or a specific category is given, FilteredStats and Insights cover only
// books with sessions inside that selection.
func (s *statsService) Report(ctx context.Context, query dto.StatsQuery) (*dto.StatsReport, error) {
	r, err := stats.ParseRange(query.Range)
	if err != nil {
		return nil, newValidationError(ErrInvalidQuery, []string{err.Error()})
	}
	category := query.Category
	if category == "" {
		category = stats.AllCategories
	}

	books, staleBooks, err := s.snapshots.Books(ctx)
	if err != nil {
		return nil, err
	}
	goals, staleGoals, err := s.snapshots.Goals(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	st := stats.ComputeStats(books, now)
	selected := books
	var filtered *stats.ReadingStats
	if r != stats.RangeAll || category != stats.AllCategories {
		selected = stats.FilterBooks(books, r, category, now)
		fs := stats.ComputeStats(selected, now)
		filtered = &fs
	}

	streak := stats.ReadingStreak(books, now)
	return &dto.StatsReport{
		Range:         r,
		Category:      category,
		Stats:         st,
		FilteredStats: filtered,
		GoalProgress:  stats.CompareGoals(st, goals),
		DailyTargets:  stats.DailyTarget(goals),
		Streak:        streak,
		Milestones:    stats.ComputeMilestones(st, streak),
		Insights:      stats.ComputeInsights(selected),
		GeneratedAt:   now.Format(time.RFC3339),
		Stale:         staleBooks || staleGoals,
	}, nil
}

func (s *statsService) Speed(ctx context.Context, query dto.SpeedQuery) (*dto.SpeedResponse, error) {
	if query.Last < 0 {
		return nil, newValidationError(ErrInvalidQuery, []string{"last must not be negative"})
	}
	books, stale, err := s.snapshots.Books(ctx)
	if err != nil {
		return nil, err
	}
	samples := stats.LastSamples(stats.ReadingSpeedData(books), query.Last)
	return &dto.SpeedResponse{Data: samples, Stale: stale}, nil
}
