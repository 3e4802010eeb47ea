package service

import (
	"context"
	"errors"
	"log/slog"

	"bookplanner/internal/metrics"
	"bookplanner/internal/microservices/http-api/models"
	"bookplanner/internal/microservices/http-api/repository"
)

// SnapshotStore holds the last good read of books and goals.
type SnapshotStore interface {
	SaveBooks(ctx context.Context, books []models.Book) error
	LoadBooks(ctx context.Context) ([]models.Book, bool, error)
	SaveGoals(ctx context.Context, goals models.Goals) error
	LoadGoals(ctx context.Context) (*models.Goals, bool, error)
	Clear(ctx context.Context) error
}

// Snapshots reads books and goals as value snapshots. When the database
// read fails and a cached snapshot exists, the cached copy is returned and
// flagged stale.
type Snapshots struct {
	books  repository.BookRepository
	goals  repository.GoalsRepository
	cache  SnapshotStore
	logger *slog.Logger
}

func NewSnapshots(books repository.BookRepository, goals repository.GoalsRepository, cache SnapshotStore, logger *slog.Logger) *Snapshots {
	return &Snapshots{books: books, goals: goals, cache: cache, logger: logger}
}

func (s *Snapshots) Books(ctx context.Context) ([]models.Book, bool, error) {
	books, err := s.books.List(ctx)
	if err == nil {
		if s.cache != nil {
			if cerr := s.cache.SaveBooks(ctx, books); cerr != nil {
				s.logger.Warn("snapshot_save_failed", slog.String("kind", "books"), slog.Any("error", cerr))
			}
		}
		return books, false, nil
	}

	if s.cache != nil {
		cached, ok, cerr := s.cache.LoadBooks(ctx)
		if cerr == nil && ok {
			metrics.StaleSnapshotsServed.Inc()
			s.logger.Warn("stale_snapshot_served", slog.String("kind", "books"), slog.Any("error", err))
			return cached, true, nil
		}
	}
	return nil, false, err
}

// Goals falls back to the defaults when none are stored.
func (s *Snapshots) Goals(ctx context.Context) (models.Goals, bool, error) {
	stored, err := s.goals.Get(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.DefaultGoals(), false, nil
	case err == nil:
		if s.cache != nil {
			if cerr := s.cache.SaveGoals(ctx, *stored); cerr != nil {
				s.logger.Warn("snapshot_save_failed", slog.String("kind", "goals"), slog.Any("error", cerr))
			}
		}
		return *stored, false, nil
	}

	if s.cache != nil {
		cached, ok, cerr := s.cache.LoadGoals(ctx)
		if cerr == nil && ok {
			metrics.StaleSnapshotsServed.Inc()
			s.logger.Warn("stale_snapshot_served", slog.String("kind", "goals"), slog.Any("error", err))
			return *cached, true, nil
		}
	}
	return models.Goals{}, false, err
}

// Invalidate drops cached snapshots after bulk changes.
func (s *Snapshots) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Warn("snapshot_clear_failed", slog.Any("error", err))
	}
}
