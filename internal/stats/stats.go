// Package stats folds a book collection into reading statistics. Every
// function is pure: the reference time is always passed in.
package stats

import (
	"math"
	"time"

	"bookplanner/internal/microservices/http-api/models"
)

// ReadingStats is a derived snapshot; it is never persisted.
type ReadingStats struct {
	TotalBooks          int `json:"totalBooks"`
	CompletedBooks      int `json:"completedBooks"`
	ReadingBooks        int `json:"readingBooks"`
	ToReadBooks         int `json:"toReadBooks"`
	TotalPages          int `json:"totalPages"`
	CompletedPages      int `json:"completedPages"`
	TotalReadingTime    int `json:"totalReadingTime"`
	AverageReadingSpeed int `json:"averageReadingSpeed"`
	MonthlyBooks        int `json:"monthlyBooks"`
	MonthlyPages        int `json:"monthlyPages"`
	WeeklyBooks         int `json:"weeklyBooks"`
	WeeklyPages         int `json:"weeklyPages"`
}

// ComputeStats aggregates books into a ReadingStats snapshot relative to now.
//
// completedPages sums each book's stored currentPage, so clamped progress is
// never double counted. A completed book is attributed to the month/week of
// its last session by position, which stands in for a completion date.
// Session dates that do not parse still count toward reading time but fall
// in no window.
func ComputeStats(books []models.Book, now time.Time) ReadingStats {
	var st ReadingStats
	w := newWindow(now)

	for _, book := range books {
		st.TotalBooks++
		st.TotalPages += book.TotalPages
		st.CompletedPages += book.CurrentPage

		switch book.Status {
		case models.StatusCompleted:
			st.CompletedBooks++
		case models.StatusReading:
			st.ReadingBooks++
		case models.StatusToRead:
			st.ToReadBooks++
		}

		for _, session := range book.ReadingSessions {
			st.TotalReadingTime += session.Minutes

			d, ok := ParseDate(session.Date, w.loc)
			if !ok {
				continue
			}
			if w.inMonth(d) {
				st.MonthlyPages += session.Pages
			}
			if w.inWeek(d) {
				st.WeeklyPages += session.Pages
			}
		}

		if book.Status == models.StatusCompleted && len(book.ReadingSessions) > 0 {
			last := book.ReadingSessions[len(book.ReadingSessions)-1]
			if d, ok := ParseDate(last.Date, w.loc); ok {
				if w.inMonth(d) {
					st.MonthlyBooks++
				}
				if w.inWeek(d) {
					st.WeeklyBooks++
				}
			}
		}
	}

	st.AverageReadingSpeed = int(math.Round(pagesPerHour(st.CompletedPages, st.TotalReadingTime)))
	return st
}

// pagesPerHour returns 0 when minutes is not positive.
func pagesPerHour(pages, minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	return float64(pages) * 60 / float64(minutes)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
