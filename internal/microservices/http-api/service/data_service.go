package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/models"
	"bookplanner/internal/microservices/http-api/repository"
	"bookplanner/internal/stats"
)

type DataService interface {
	Export(ctx context.Context) (*dto.ExportPayload, error)
	Import(ctx context.Context, payload dto.ExportPayload) (*dto.ImportSummary, error)
	ClearAll(ctx context.Context) error
}

type dataService struct {
	books     repository.BookRepository
	goals     repository.GoalsRepository
	settings  repository.SettingsRepository
	snapshots *Snapshots
	now       Clock
	loc       *time.Location
	logger    *slog.Logger
}

func NewDataService(
	books repository.BookRepository,
	goals repository.GoalsRepository,
	settings repository.SettingsRepository,
	snapshots *Snapshots,
	now Clock,
	loc *time.Location,
	logger *slog.Logger,
) DataService {
	return &dataService{
		books:     books,
		goals:     goals,
		settings:  settings,
		snapshots: snapshots,
		now:       now,
		loc:       loc,
		logger:    logger,
	}
}

func (s *dataService) Export(ctx context.Context) (*dto.ExportPayload, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []models.Book{}
	}
	goals, _, err := s.snapshots.Goals(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	enabled := settings.NotificationsEnabled
	return &dto.ExportPayload{
		Books:         books,
		Goals:         &goals,
		ReadingStreak: stats.ReadingStreak(books, now),
		Notifications: &enabled,
		ExportDate:    now.UTC().Format("2006-01-02T15:04:05.000Z"),
	}, nil
}

// Import replaces whatever sections the payload carries. Nothing is written
// unless every section validates.
func (s *dataService) Import(ctx context.Context, payload dto.ExportPayload) (*dto.ImportSummary, error) {
	books, problems := s.normalizeBooks(payload.Books)
	if payload.Goals != nil {
		problems = append(problems, problemsOf(validateGoals(*payload.Goals))...)
	}
	if err := newValidationError(ErrInvalidImport, problems); err != nil {
		return nil, err
	}

	summary := &dto.ImportSummary{}
	if payload.Books != nil {
		if err := s.books.ReplaceAll(ctx, books); err != nil {
			return nil, err
		}
		summary.Books = len(books)
	}
	if payload.Goals != nil {
		if err := s.goals.Save(ctx, *payload.Goals); err != nil {
			return nil, err
		}
		summary.Goals = true
	}
	if payload.Notifications != nil {
		if err := s.settings.Save(ctx, models.Settings{NotificationsEnabled: *payload.Notifications}); err != nil {
			return nil, err
		}
		summary.Notifications = true
	}
	s.snapshots.Invalidate(ctx)

	s.logger.Info("data_imported",
		slog.Int("books", summary.Books),
		slog.Bool("goals", summary.Goals),
		slog.Bool("notifications", summary.Notifications),
	)
	return summary, nil
}

// normalizeBooks fills defaults the way books created through the API get
// them and assigns fresh ids to missing or repeated ones.
func (s *dataService) normalizeBooks(in []models.Book) ([]models.Book, []string) {
	var problems []string
	out := make([]models.Book, 0, len(in))
	seen := make(map[int64]bool, len(in))
	nextID := s.now().UnixMilli()

	for i, b := range in {
		b.Title = trim(b.Title)
		b.Author = trim(b.Author)
		b.Category = trim(b.Category)
		if b.ID <= 0 || seen[b.ID] {
			for seen[nextID] {
				nextID++
			}
			b.ID = nextID
		}
		seen[b.ID] = true

		if b.Priority == "" {
			b.Priority = models.PriorityMedium
		}
		if b.Status == "" {
			b.Status = inferStatus(b)
		}
		b.CurrentPage = min(max(b.CurrentPage, 0), b.TotalPages)

		sessions := make([]models.ReadingSession, 0, len(b.ReadingSessions))
		for j, rs := range b.ReadingSessions {
			if rs.Pages < 0 || rs.Minutes < 0 {
				problems = append(problems, fmt.Sprintf("books[%d].readingSessions[%d]: pages and minutes must not be negative", i, j))
			}
			sessions = append(sessions, models.ReadingSession{Date: rs.Date, Pages: rs.Pages, Minutes: rs.Minutes})
		}
		b.ReadingSessions = sessions

		for _, p := range problemsOf(validateBook(&b)) {
			problems = append(problems, fmt.Sprintf("books[%d]: %s", i, p))
		}
		out = append(out, b)
	}
	return out, problems
}

func inferStatus(b models.Book) models.Status {
	switch {
	case b.TotalPages > 0 && b.CurrentPage >= b.TotalPages:
		return models.StatusCompleted
	case len(b.ReadingSessions) > 0 || b.CurrentPage > 0:
		return models.StatusReading
	}
	return models.StatusToRead
}

func (s *dataService) ClearAll(ctx context.Context) error {
	if err := s.books.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.goals.Save(ctx, models.DefaultGoals()); err != nil {
		return err
	}
	if err := s.settings.Save(ctx, models.Settings{}); err != nil {
		return err
	}
	s.snapshots.Invalidate(ctx)
	s.logger.Info("data_cleared")
	return nil
}
