package handler_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/handler"
	"bookplanner/internal/microservices/http-api/models"
	"bookplanner/internal/stats"
)

// --- MOCK SERVICES ---

type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) List(ctx context.Context, query dto.BookListQuery) ([]models.Book, bool, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Bool(1), args.Error(2)
}

func (m *MockBookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) Add(ctx context.Context, req dto.CreateBookRequest) (*models.Book, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) Update(ctx context.Context, id int64, req dto.UpdateBookRequest) (*models.Book, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookService) AddSession(ctx context.Context, id int64, req dto.AddSessionRequest) (*models.Book, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) CountByCategory(ctx context.Context) (map[string]int, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(map[string]int), args.Bool(1), args.Error(2)
}

type MockGoalService struct {
	mock.Mock
}

func (m *MockGoalService) Get(ctx context.Context) (models.Goals, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Goals), args.Bool(1), args.Error(2)
}

func (m *MockGoalService) Update(ctx context.Context, goals models.Goals) (models.Goals, error) {
	args := m.Called(ctx, goals)
	return args.Get(0).(models.Goals), args.Error(1)
}

func (m *MockGoalService) UpdateMonthly(ctx context.Context, patch dto.GoalTargetPatch) (models.Goals, error) {
	args := m.Called(ctx, patch)
	return args.Get(0).(models.Goals), args.Error(1)
}

func (m *MockGoalService) UpdateWeekly(ctx context.Context, patch dto.GoalTargetPatch) (models.Goals, error) {
	args := m.Called(ctx, patch)
	return args.Get(0).(models.Goals), args.Error(1)
}

func (m *MockGoalService) Reset(ctx context.Context) (models.Goals, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Goals), args.Error(1)
}

func (m *MockGoalService) DailyTargets(ctx context.Context) (stats.DailyTargets, error) {
	args := m.Called(ctx)
	return args.Get(0).(stats.DailyTargets), args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Report(ctx context.Context, query dto.StatsQuery) (*dto.StatsReport, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatsReport), args.Error(1)
}

func (m *MockStatsService) Speed(ctx context.Context, query dto.SpeedQuery) (*dto.SpeedResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SpeedResponse), args.Error(1)
}

type MockDataService struct {
	mock.Mock
}

func (m *MockDataService) Export(ctx context.Context) (*dto.ExportPayload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExportPayload), args.Error(1)
}

func (m *MockDataService) Import(ctx context.Context, payload dto.ExportPayload) (*dto.ImportSummary, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportSummary), args.Error(1)
}

func (m *MockDataService) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Status(ctx context.Context) (*dto.NotificationStatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NotificationStatusResponse), args.Error(1)
}

func (m *MockNotificationService) SetEnabled(ctx context.Context, enabled bool) (*dto.NotificationStatusResponse, error) {
	args := m.Called(ctx, enabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NotificationStatusResponse), args.Error(1)
}

func (m *MockNotificationService) SendTest(ctx context.Context) (*models.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationService) SendDailyReminder(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

// --- SETUP ---

type mocks struct {
	books         *MockBookService
	goals         *MockGoalService
	stats         *MockStatsService
	data          *MockDataService
	notifications *MockNotificationService
}

func setupRouter() (*gin.Engine, *mocks) {
	gin.SetMode(gin.TestMode)
	m := &mocks{
		books:         new(MockBookService),
		goals:         new(MockGoalService),
		stats:         new(MockStatsService),
		data:          new(MockDataService),
		notifications: new(MockNotificationService),
	}
	r := handler.NewRouter(handler.RouterDeps{
		Books:         m.books,
		Goals:         m.goals,
		Stats:         m.stats,
		Data:          m.data,
		Notifications: m.notifications,
		DB:            fakePinger{},
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return r, m
}
