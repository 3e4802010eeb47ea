package stats

import (
	"fmt"
	"time"

	"bookplanner/internal/microservices/http-api/models"
)

type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
	RangeAll   Range = "all"
)

// AllCategories disables category filtering.
const AllCategories = "all"

func ParseRange(s string) (Range, error) {
	switch r := Range(s); r {
	case "":
		return RangeAll, nil
	case RangeWeek, RangeMonth, RangeYear, RangeAll:
		return r, nil
	}
	return "", fmt.Errorf("unknown range %q", s)
}

// Cutoff returns the earliest instant included by r, and false for RangeAll.
func (r Range) Cutoff(now time.Time) (time.Time, bool) {
	switch r {
	case RangeWeek:
		return now.AddDate(0, 0, -7), true
	case RangeMonth:
		return now.AddDate(0, -1, 0), true
	case RangeYear:
		return now.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

// FilterBooks keeps books with at least one session on or after the range
// cutoff that also match category. Books without sessions are always dropped.
func FilterBooks(books []models.Book, r Range, category string, now time.Time) []models.Book {
	cutoff, bounded := r.Cutoff(now)
	out := make([]models.Book, 0, len(books))
	for _, book := range books {
		if category != "" && category != AllCategories && book.Category != category {
			continue
		}
		if hasSessionSince(book, cutoff, bounded, now.Location()) {
			out = append(out, book)
		}
	}
	return out
}

func hasSessionSince(book models.Book, cutoff time.Time, bounded bool, loc *time.Location) bool {
	for _, s := range book.ReadingSessions {
		if !bounded {
			return true
		}
		if d, ok := ParseDate(s.Date, loc); ok && !d.Before(midnight(cutoff)) {
			return true
		}
	}
	return false
}
