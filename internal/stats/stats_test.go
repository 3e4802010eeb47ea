package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bookplanner/internal/microservices/http-api/models"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 14, 30, 0, 0, time.UTC)
}

func session(date string, pages, minutes int) models.ReadingSession {
	return models.ReadingSession{Date: date, Pages: pages, Minutes: minutes}
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, ReadingStats{}, ComputeStats(nil, at(2024, 3, 15)))
	assert.Equal(t, ReadingStats{}, ComputeStats([]models.Book{}, at(2024, 3, 15)))
}

func TestComputeStats_ExampleScenario(t *testing.T) {
	books := []models.Book{{
		ID: 1, TotalPages: 300, CurrentPage: 300, Status: models.StatusCompleted,
		ReadingSessions: []models.ReadingSession{
			session("2024-03-01", 150, 120),
			session("2024-03-10", 150, 100),
		},
	}}

	st := ComputeStats(books, at(2024, 3, 15))

	assert.Equal(t, 300, st.MonthlyPages)
	assert.Equal(t, 1, st.MonthlyBooks)
	assert.Equal(t, 220, st.TotalReadingTime)
	assert.Equal(t, 82, st.AverageReadingSpeed)
	assert.Equal(t, 1, st.TotalBooks)
	assert.Equal(t, 1, st.CompletedBooks)
	assert.Equal(t, 300, st.TotalPages)
	assert.Equal(t, 300, st.CompletedPages)
	// 2024-03-15 is a Friday, so the week began on Sunday the 10th.
	assert.Equal(t, 150, st.WeeklyPages)
	assert.Equal(t, 1, st.WeeklyBooks)
}

func TestComputeStats_UsesStoredCurrentPage(t *testing.T) {
	books := []models.Book{{
		TotalPages: 100, CurrentPage: 100, Status: models.StatusCompleted,
		ReadingSessions: []models.ReadingSession{
			session("2024-03-01", 80, 60),
			session("2024-03-02", 70, 60),
		},
	}}

	st := ComputeStats(books, at(2024, 3, 15))

	assert.Equal(t, 100, st.CompletedPages)
	assert.Equal(t, 150, st.MonthlyPages)
	assert.Equal(t, 50, st.AverageReadingSpeed)
}

func TestComputeStats_MonthWindow(t *testing.T) {
	now := at(2024, 3, 15)
	tests := []struct {
		date string
		want int
	}{
		{"2024-03-01", 10},
		{"2024-03-31", 10},
		{"2024-02-28", 0},
		{"2023-03-01", 0},
		{"2025-03-01", 0},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			books := []models.Book{{
				Status:          models.StatusReading,
				ReadingSessions: []models.ReadingSession{session(tt.date, 10, 10)},
			}}
			assert.Equal(t, tt.want, ComputeStats(books, now).MonthlyPages)
		})
	}
}

func TestComputeStats_MonthWindowAcrossYearBoundary(t *testing.T) {
	books := []models.Book{{
		Status:          models.StatusReading,
		ReadingSessions: []models.ReadingSession{session("2024-01-05", 10, 10)},
	}}
	assert.Equal(t, 0, ComputeStats(books, at(2024, 12, 20)).MonthlyPages)
	assert.Equal(t, 10, ComputeStats(books, at(2024, 1, 20)).MonthlyPages)
}

func TestComputeStats_WeekWindow(t *testing.T) {
	// Wednesday.
	now := at(2024, 3, 13)
	tests := []struct {
		name string
		date string
		want int
	}{
		{"sunday inclusive", "2024-03-10", 10},
		{"today", "2024-03-13", 10},
		{"saturday before", "2024-03-09", 0},
		{"eight days prior", "2024-03-05", 0},
		{"future date", "2024-03-14", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books := []models.Book{{
				Status:          models.StatusReading,
				ReadingSessions: []models.ReadingSession{session(tt.date, 10, 10)},
			}}
			assert.Equal(t, tt.want, ComputeStats(books, now).WeeklyPages)
		})
	}
}

func TestComputeStats_WeekStartsTodayOnSunday(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 1, 0, time.UTC)
	books := []models.Book{{
		Status: models.StatusReading,
		ReadingSessions: []models.ReadingSession{
			session("2024-03-10", 5, 10),
			session("2024-03-09", 7, 10),
		},
	}}
	assert.Equal(t, 5, ComputeStats(books, now).WeeklyPages)
}

func TestComputeStats_CompletionUsesLastSessionByPosition(t *testing.T) {
	books := []models.Book{{
		TotalPages: 200, CurrentPage: 200, Status: models.StatusCompleted,
		ReadingSessions: []models.ReadingSession{
			session("2024-03-12", 100, 60),
			// backdated after the fact
			session("2024-02-20", 100, 60),
		},
	}}

	st := ComputeStats(books, at(2024, 3, 15))

	assert.Equal(t, 0, st.MonthlyBooks)
	assert.Equal(t, 0, st.WeeklyBooks)
	assert.Equal(t, 100, st.MonthlyPages)
}

func TestComputeStats_CompletedWithoutSessions(t *testing.T) {
	books := []models.Book{{TotalPages: 50, CurrentPage: 50, Status: models.StatusCompleted}}

	st := ComputeStats(books, at(2024, 3, 15))

	assert.Equal(t, 1, st.CompletedBooks)
	assert.Equal(t, 0, st.MonthlyBooks)
	assert.Equal(t, 0, st.AverageReadingSpeed)
}

func TestComputeStats_StatusCounts(t *testing.T) {
	books := []models.Book{
		{TotalPages: 100, Status: models.StatusToRead},
		{TotalPages: 200, CurrentPage: 20, Status: models.StatusReading, ReadingSessions: []models.ReadingSession{session("2024-03-14", 20, 30)}},
		{TotalPages: 300, CurrentPage: 10, Status: models.StatusReading, ReadingSessions: []models.ReadingSession{session("2024-03-14", 10, 30)}},
		{TotalPages: 50, CurrentPage: 50, Status: models.StatusCompleted, ReadingSessions: []models.ReadingSession{session("2024-03-14", 50, 60)}},
	}

	st := ComputeStats(books, at(2024, 3, 15))

	assert.Equal(t, 4, st.TotalBooks)
	assert.Equal(t, 1, st.ToReadBooks)
	assert.Equal(t, 2, st.ReadingBooks)
	assert.Equal(t, 1, st.CompletedBooks)
	assert.Equal(t, 650, st.TotalPages)
	assert.Equal(t, 80, st.CompletedPages)
	assert.Equal(t, 120, st.TotalReadingTime)
	assert.Equal(t, 40, st.AverageReadingSpeed)
}

func TestComputeStats_ZeroReadingTime(t *testing.T) {
	books := []models.Book{{
		CurrentPage: 40, Status: models.StatusReading,
		ReadingSessions: []models.ReadingSession{session("2024-03-14", 40, 0)},
	}}
	assert.Equal(t, 0, ComputeStats(books, at(2024, 3, 15)).AverageReadingSpeed)
}

func TestComputeStats_UnparseableDate(t *testing.T) {
	books := []models.Book{{
		CurrentPage: 10, Status: models.StatusReading,
		ReadingSessions: []models.ReadingSession{session("not-a-date", 10, 15)},
	}}

	st := ComputeStats(books, at(2024, 3, 15))

	assert.Equal(t, 15, st.TotalReadingTime)
	assert.Equal(t, 0, st.MonthlyPages)
	assert.Equal(t, 0, st.WeeklyPages)
}

func TestComputeStats_Deterministic(t *testing.T) {
	books := []models.Book{{
		TotalPages: 300, CurrentPage: 120, Status: models.StatusReading,
		ReadingSessions: []models.ReadingSession{session("2024-03-11", 60, 45), session("2024-03-12", 60, 50)},
	}}
	now := at(2024, 3, 15)

	first := ComputeStats(books, now)
	second := ComputeStats(books, now)

	assert.Equal(t, first, second)
	assert.Len(t, books[0].ReadingSessions, 2)
}

func TestWeekStart(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2024, 3, 13, 23, 59, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), WeekStart(now))
}
