package service

import (
	"context"
	"log/slog"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/models"
	"bookplanner/internal/microservices/http-api/repository"
	"bookplanner/internal/stats"
)

type GoalService interface {
	Get(ctx context.Context) (models.Goals, bool, error)
	Update(ctx context.Context, goals models.Goals) (models.Goals, error)
	UpdateMonthly(ctx context.Context, patch dto.GoalTargetPatch) (models.Goals, error)
	UpdateWeekly(ctx context.Context, patch dto.GoalTargetPatch) (models.Goals, error)
	Reset(ctx context.Context) (models.Goals, error)
	DailyTargets(ctx context.Context) (stats.DailyTargets, error)
}

type goalService struct {
	repo      repository.GoalsRepository
	snapshots *Snapshots
	logger    *slog.Logger
}

func NewGoalService(repo repository.GoalsRepository, snapshots *Snapshots, logger *slog.Logger) GoalService {
	return &goalService{repo: repo, snapshots: snapshots, logger: logger}
}

func (s *goalService) Get(ctx context.Context) (models.Goals, bool, error) {
	return s.snapshots.Goals(ctx)
}

// Update overwrites both periods at once.
func (s *goalService) Update(ctx context.Context, goals models.Goals) (models.Goals, error) {
	goals.ID = models.GoalsRowID
	if err := validateGoals(goals); err != nil {
		return models.Goals{}, err
	}
	if err := s.repo.Save(ctx, goals); err != nil {
		return models.Goals{}, err
	}
	s.logger.Info("goals_updated",
		slog.Int("monthly_books", goals.Monthly.Books),
		slog.Int("monthly_pages", goals.Monthly.Pages),
		slog.Int("weekly_books", goals.Weekly.Books),
		slog.Int("weekly_pages", goals.Weekly.Pages),
	)
	return goals, nil
}

func (s *goalService) UpdateMonthly(ctx context.Context, patch dto.GoalTargetPatch) (models.Goals, error) {
	return s.patch(ctx, patch, func(g *models.Goals) *models.GoalTarget { return &g.Monthly })
}

func (s *goalService) UpdateWeekly(ctx context.Context, patch dto.GoalTargetPatch) (models.Goals, error) {
	return s.patch(ctx, patch, func(g *models.Goals) *models.GoalTarget { return &g.Weekly })
}

func (s *goalService) patch(ctx context.Context, patch dto.GoalTargetPatch, target func(*models.Goals) *models.GoalTarget) (models.Goals, error) {
	current, _, err := s.snapshots.Goals(ctx)
	if err != nil {
		return models.Goals{}, err
	}
	t := target(&current)
	if patch.Books != nil {
		t.Books = *patch.Books
	}
	if patch.Pages != nil {
		t.Pages = *patch.Pages
	}
	return s.Update(ctx, current)
}

func (s *goalService) Reset(ctx context.Context) (models.Goals, error) {
	return s.Update(ctx, models.DefaultGoals())
}

func (s *goalService) DailyTargets(ctx context.Context) (stats.DailyTargets, error) {
	goals, _, err := s.snapshots.Goals(ctx)
	if err != nil {
		return stats.DailyTargets{}, err
	}
	return stats.DailyTarget(goals), nil
}
