package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"slices"
	"strings"
	"time"

	"bookplanner/internal/metrics"
	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/models"
	"bookplanner/internal/microservices/http-api/repository"
	"bookplanner/internal/stats"
)

// Clock returns the current time; tests pin it.
type Clock func() time.Time

const maxIDAttempts = 3

type BookService interface {
	List(ctx context.Context, query dto.BookListQuery) ([]models.Book, bool, error)
	Get(ctx context.Context, id int64) (*models.Book, error)
	Add(ctx context.Context, req dto.CreateBookRequest) (*models.Book, error)
	Update(ctx context.Context, id int64, req dto.UpdateBookRequest) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
	AddSession(ctx context.Context, id int64, req dto.AddSessionRequest) (*models.Book, error)
	CountByCategory(ctx context.Context) (map[string]int, bool, error)
}

type bookService struct {
	repo      repository.BookRepository
	snapshots *Snapshots
	now       Clock
	loc       *time.Location
	logger    *slog.Logger
}

func NewBookService(repo repository.BookRepository, snapshots *Snapshots, now Clock, loc *time.Location, logger *slog.Logger) BookService {
	return &bookService{
		repo:      repo,
		snapshots: snapshots,
		now:       now,
		loc:       loc,
		logger:    logger,
	}
}

func (s *bookService) List(ctx context.Context, query dto.BookListQuery) ([]models.Book, bool, error) {
	if query.Status != "" && !models.Status(query.Status).Valid() {
		return nil, false, newValidationError(ErrInvalidQuery, []string{"unknown status " + query.Status})
	}
	if query.Priority != "" && !models.Priority(query.Priority).Valid() {
		return nil, false, newValidationError(ErrInvalidQuery, []string{"unknown priority " + query.Priority})
	}
	switch query.Sort {
	case "", dto.SortRecent, dto.SortTitle, dto.SortAuthor, dto.SortProgress, dto.SortPriority:
	default:
		return nil, false, newValidationError(ErrInvalidQuery, []string{"unknown sort " + query.Sort})
	}

	books, stale, err := s.snapshots.Books(ctx)
	if err != nil {
		return nil, false, err
	}
	return FilterAndSort(books, query), stale, nil
}

func (s *bookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	return s.repo.Get(ctx, id)
}

func (s *bookService) Add(ctx context.Context, req dto.CreateBookRequest) (*models.Book, error) {
	book := &models.Book{
		Title:           trim(req.Title),
		Author:          trim(req.Author),
		Category:        trim(req.Category),
		TotalPages:      req.TotalPages,
		CurrentPage:     0,
		Status:          models.StatusToRead,
		Priority:        models.Priority(trim(req.Priority)),
		ReadingSessions: []models.ReadingSession{},
	}
	if book.Priority == "" {
		book.Priority = models.PriorityMedium
	}
	if err := validateBook(book); err != nil {
		return nil, err
	}

	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		book.ID = s.newID()
		err = s.repo.Create(ctx, book)
		if !errors.Is(err, repository.ErrDuplicateID) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("book_added", slog.Int64("book_id", book.ID), slog.String("title", book.Title))
	return book, nil
}

// newID mirrors the millisecond timestamp plus jitter scheme of earlier exports.
func (s *bookService) newID() int64 {
	return s.now().UnixMilli() + rand.Int63n(1000)
}

func (s *bookService) Update(ctx context.Context, id int64, req dto.UpdateBookRequest) (*models.Book, error) {
	book, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = trim(*req.Title)
	}
	if req.Author != nil {
		book.Author = trim(*req.Author)
	}
	if req.Category != nil {
		book.Category = trim(*req.Category)
	}
	if req.TotalPages != nil {
		book.TotalPages = *req.TotalPages
	}
	if req.Priority != nil {
		book.Priority = models.Priority(trim(*req.Priority))
	}
	if req.Status != nil {
		book.Status = models.Status(trim(*req.Status))
	}
	if req.CurrentPage != nil {
		book.CurrentPage = *req.CurrentPage
	}
	if err := validateBook(book); err != nil {
		return nil, err
	}
	book.CurrentPage = min(max(book.CurrentPage, 0), book.TotalPages)

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("book_deleted", slog.Int64("book_id", id))
	return nil
}

func (s *bookService) AddSession(ctx context.Context, id int64, req dto.AddSessionRequest) (*models.Book, error) {
	session := models.ReadingSession{
		Date:    trim(req.Date),
		Pages:   req.Pages,
		Minutes: req.Minutes,
	}
	if err := validateSession(session, s.now().In(s.loc)); err != nil {
		return nil, err
	}

	var completed bool
	book, err := s.repo.AppendSession(ctx, id, session, func(b *models.Book) error {
		completed = ApplySession(b, session)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SessionsRecordedTotal.Inc()
	metrics.PagesRecordedTotal.Add(float64(session.Pages))
	if completed {
		metrics.BooksCompletedTotal.Inc()
		s.logger.Info("book_completed", slog.Int64("book_id", id))
	}
	s.logger.Info("session_added",
		slog.Int64("book_id", id),
		slog.Int("pages", session.Pages),
		slog.Int("minutes", session.Minutes),
		slog.Int("current_page", book.CurrentPage),
	)
	return book, nil
}

// ApplySession advances a book's progress for a new session without
// appending it. currentPage is clamped to totalPages; status only moves
// forward. It reports whether the book became completed.
func ApplySession(b *models.Book, session models.ReadingSession) bool {
	if b.StartDate == nil {
		date := session.Date
		b.StartDate = &date
	}
	if b.Status == models.StatusToRead {
		b.Status = models.StatusReading
	}
	b.CurrentPage = min(b.CurrentPage+session.Pages, b.TotalPages)
	if b.CurrentPage >= b.TotalPages && b.Status != models.StatusCompleted {
		b.Status = models.StatusCompleted
		return true
	}
	return false
}

func (s *bookService) CountByCategory(ctx context.Context) (map[string]int, bool, error) {
	books, stale, err := s.snapshots.Books(ctx)
	if err != nil {
		return nil, false, err
	}
	return stats.CountByCategory(books), stale, nil
}

// FilterAndSort applies list filters and ordering to a copy of books.
func FilterAndSort(books []models.Book, query dto.BookListQuery) []models.Book {
	search := strings.ToLower(strings.TrimSpace(query.Search))
	out := make([]models.Book, 0, len(books))
	for _, b := range books {
		if query.Status != "" && string(b.Status) != query.Status {
			continue
		}
		if query.Priority != "" && string(b.Priority) != query.Priority {
			continue
		}
		if search != "" && !matchesSearch(b, search) {
			continue
		}
		out = append(out, b)
	}

	slices.SortStableFunc(out, func(a, b models.Book) int {
		switch query.Sort {
		case dto.SortTitle:
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case dto.SortAuthor:
			return strings.Compare(strings.ToLower(a.Author), strings.ToLower(b.Author))
		case dto.SortProgress:
			return compareDesc(a.Progress(), b.Progress())
		case dto.SortPriority:
			return b.Priority.Rank() - a.Priority.Rank()
		default:
			return compareDesc(a.ID, b.ID)
		}
	})
	return out
}

func matchesSearch(b models.Book, needle string) bool {
	return strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Author), needle) ||
		strings.Contains(strings.ToLower(b.Category), needle)
}

func compareDesc[T int64 | float64](a, b T) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}
