package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"bookplanner/internal/microservices/http-api/models"
)

// --- MOCK REPOSITORIES ---

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) List(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) Get(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AppendSession runs mutate against the stubbed book, the way the real
// repository does inside its transaction.
func (m *MockBookRepository) AppendSession(ctx context.Context, id int64, session models.ReadingSession, mutate func(*models.Book) error) (*models.Book, error) {
	args := m.Called(ctx, id, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	book := args.Get(0).(*models.Book)
	if err := mutate(book); err != nil {
		return nil, err
	}
	book.ReadingSessions = append(book.ReadingSessions, session)
	return book, args.Error(1)
}

func (m *MockBookRepository) ReplaceAll(ctx context.Context, books []models.Book) error {
	args := m.Called(ctx, books)
	return args.Error(0)
}

func (m *MockBookRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockGoalsRepository struct {
	mock.Mock
}

func (m *MockGoalsRepository) Get(ctx context.Context) (*models.Goals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Goals), args.Error(1)
}

func (m *MockGoalsRepository) Save(ctx context.Context, goals models.Goals) error {
	args := m.Called(ctx, goals)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings models.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) SaveBooks(ctx context.Context, books []models.Book) error {
	args := m.Called(ctx, books)
	return args.Error(0)
}

func (m *MockSnapshotStore) LoadBooks(ctx context.Context) ([]models.Book, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Bool(1), args.Error(2)
}

func (m *MockSnapshotStore) SaveGoals(ctx context.Context, goals models.Goals) error {
	args := m.Called(ctx, goals)
	return args.Error(0)
}

func (m *MockSnapshotStore) LoadGoals(ctx context.Context) (*models.Goals, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Goals), args.Bool(1), args.Error(2)
}

func (m *MockSnapshotStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// recordingHub captures broadcasts.
type recordingHub struct {
	mu       sync.Mutex
	messages []models.Notification
	clients  int
}

func (h *recordingHub) Broadcast(msgType string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n, ok := data.(models.Notification); ok && msgType == notificationMessageType {
		h.messages = append(h.messages, n)
	}
}

func (h *recordingHub) ClientCount() int {
	return h.clients
}

func (h *recordingHub) sent() []models.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.Notification(nil), h.messages...)
}

// --- HELPERS ---

// Wednesday 13 March 2024, 10:00 UTC.
var fixedNow = time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
