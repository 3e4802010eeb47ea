package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/models"
	"bookplanner/internal/microservices/http-api/repository"
)

type dataMocks struct {
	books    *MockBookRepository
	goals    *MockGoalsRepository
	settings *MockSettingsRepository
	cache    *MockSnapshotStore
}

func newTestDataService() (DataService, *dataMocks) {
	m := &dataMocks{
		books:    new(MockBookRepository),
		goals:    new(MockGoalsRepository),
		settings: new(MockSettingsRepository),
		cache:    new(MockSnapshotStore),
	}
	snapshots := NewSnapshots(m.books, m.goals, m.cache, discardLogger())
	svc := NewDataService(m.books, m.goals, m.settings, snapshots, fixedClock, fixedNow.Location(), discardLogger())
	return svc, m
}

func TestDataService_Export(t *testing.T) {
	svc, m := newTestDataService()

	m.books.On("List", mock.Anything).Return(statsFixture(), nil)
	m.goals.On("Get", mock.Anything).Return(nil, repository.ErrNotFound)
	m.settings.On("Get", mock.Anything).Return(&models.Settings{NotificationsEnabled: true}, nil)

	payload, err := svc.Export(context.Background())
	require.NoError(t, err)

	assert.Len(t, payload.Books, 3)
	require.NotNil(t, payload.Goals)
	assert.Equal(t, models.DefaultGoals(), *payload.Goals)
	assert.Equal(t, 2, payload.ReadingStreak)
	require.NotNil(t, payload.Notifications)
	assert.True(t, *payload.Notifications)
	assert.Equal(t, "2024-03-13T10:00:00.000Z", payload.ExportDate)
}

func TestDataService_Import_NormalizesBooks(t *testing.T) {
	svc, m := newTestDataService()

	var replaced []models.Book
	m.books.On("ReplaceAll", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		replaced = args.Get(1).([]models.Book)
	}).Return(nil)
	m.cache.On("Clear", mock.Anything).Return(nil)

	payload := dto.ExportPayload{
		Books: []models.Book{
			{ID: 5, Title: " Dune ", Author: "Frank Herbert", Category: "Sci-Fi", TotalPages: 100, CurrentPage: 120,
				ReadingSessions: []models.ReadingSession{{ID: 99, BookID: 5, Date: "2024-03-01", Pages: 120, Minutes: 90}}},
			{ID: 5, Title: "Circe", Author: "Madeline Miller", Category: "Fantasy", TotalPages: 300},
			{Title: "Atlas", Author: "Zed", Category: "History", TotalPages: 50, CurrentPage: 10, Priority: models.PriorityHigh},
		},
		ReadingStreak: 12,
	}

	summary, err := svc.Import(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, &dto.ImportSummary{Books: 3}, summary)

	require.Len(t, replaced, 3)
	assert.Equal(t, int64(5), replaced[0].ID)
	assert.Equal(t, "Dune", replaced[0].Title)
	assert.Equal(t, 100, replaced[0].CurrentPage)
	assert.Equal(t, models.StatusCompleted, replaced[0].Status)
	assert.Equal(t, models.PriorityMedium, replaced[0].Priority)
	assert.Zero(t, replaced[0].ReadingSessions[0].ID)
	assert.Zero(t, replaced[0].ReadingSessions[0].BookID)

	assert.NotEqual(t, int64(5), replaced[1].ID)
	assert.Equal(t, models.StatusToRead, replaced[1].Status)
	assert.NotEqual(t, replaced[1].ID, replaced[2].ID)
	assert.Equal(t, models.StatusReading, replaced[2].Status)
	assert.Equal(t, models.PriorityHigh, replaced[2].Priority)

	m.goals.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	m.settings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	m.cache.AssertCalled(t, "Clear", mock.Anything)
}

func TestDataService_Import_RejectsWholePayload(t *testing.T) {
	svc, m := newTestDataService()

	badGoals := models.Goals{Monthly: models.GoalTarget{Books: 1, Pages: 100}, Weekly: models.GoalTarget{Books: 2, Pages: 50}}
	payload := dto.ExportPayload{
		Books: []models.Book{
			{ID: 1, Title: "ok", Author: "a", Category: "c", TotalPages: 10},
			{ID: 2, Title: "", Author: "a", Category: "c", TotalPages: 10,
				ReadingSessions: []models.ReadingSession{{Date: "2024-01-01", Pages: -1, Minutes: 5}}},
		},
		Goals:         &badGoals,
		Notifications: boolPtr(true),
	}

	_, err := svc.Import(context.Background(), payload)
	require.ErrorIs(t, err, ErrInvalidImport)

	problems := problemsOf(err)
	assert.Contains(t, problems, "books[1]: title is required")
	assert.Contains(t, problems, "books[1].readingSessions[0]: pages and minutes must not be negative")
	assert.Contains(t, problems, "weekly.books cannot exceed monthly.books")

	m.books.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
	m.goals.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	m.settings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDataService_Import_SettingsOnly(t *testing.T) {
	svc, m := newTestDataService()

	goals := models.Goals{Monthly: models.GoalTarget{Books: 5, Pages: 2000}, Weekly: models.GoalTarget{Books: 2, Pages: 500}}
	m.goals.On("Save", mock.Anything, goals).Return(nil)
	m.settings.On("Save", mock.Anything, models.Settings{NotificationsEnabled: false}).Return(nil)
	m.cache.On("Clear", mock.Anything).Return(nil)

	summary, err := svc.Import(context.Background(), dto.ExportPayload{Goals: &goals, Notifications: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, &dto.ImportSummary{Goals: true, Notifications: true}, summary)
	m.books.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
}

func TestDataService_ClearAll(t *testing.T) {
	svc, m := newTestDataService()

	m.books.On("DeleteAll", mock.Anything).Return(nil)
	m.goals.On("Save", mock.Anything, models.DefaultGoals()).Return(nil)
	m.settings.On("Save", mock.Anything, models.Settings{}).Return(nil)
	m.cache.On("Clear", mock.Anything).Return(nil)

	require.NoError(t, svc.ClearAll(context.Background()))
	m.books.AssertExpectations(t)
	m.goals.AssertExpectations(t)
	m.settings.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}
