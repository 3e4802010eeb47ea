package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"bookplanner/internal/microservices/http-api/models"
	"bookplanner/internal/stats"
)

const (
	maxTitleLen       = 200
	maxAuthorLen      = 100
	maxCategoryLen    = 50
	maxTotalPages     = 10000
	maxSessionPages   = 1000
	maxSessionMinutes = 1440

	maxMonthlyBooks = 50
	maxMonthlyPages = 10000
)

func checkText(problems []string, field, value string, max int) []string {
	switch {
	case value == "":
		return append(problems, field+" is required")
	case utf8.RuneCountInString(value) > max:
		return append(problems, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return problems
}

func checkTotalPages(problems []string, pages int) []string {
	if pages < 1 || pages > maxTotalPages {
		return append(problems, fmt.Sprintf("totalPages must be between 1 and %d", maxTotalPages))
	}
	return problems
}

func validateBook(b *models.Book) error {
	var problems []string
	problems = checkText(problems, "title", b.Title, maxTitleLen)
	problems = checkText(problems, "author", b.Author, maxAuthorLen)
	problems = checkText(problems, "category", b.Category, maxCategoryLen)
	problems = checkTotalPages(problems, b.TotalPages)
	if !b.Priority.Valid() {
		problems = append(problems, "priority must be one of low, medium, high")
	}
	if !b.Status.Valid() {
		problems = append(problems, "status must be one of to-read, reading, completed")
	}
	return newValidationError(ErrInvalidBook, problems)
}

// validateSession checks a session against the calendar day of now.
func validateSession(s models.ReadingSession, now time.Time) error {
	var problems []string
	if s.Pages < 1 || s.Pages > maxSessionPages {
		problems = append(problems, fmt.Sprintf("pages must be between 1 and %d", maxSessionPages))
	}
	if s.Minutes < 1 || s.Minutes > maxSessionMinutes {
		problems = append(problems, fmt.Sprintf("minutes must be between 1 and %d", maxSessionMinutes))
	}

	if s.Date == "" {
		problems = append(problems, "date is required")
	} else if d, ok := stats.ParseDate(s.Date, now.Location()); !ok {
		problems = append(problems, "date must be formatted as YYYY-MM-DD")
	} else {
		y, m, day := now.Date()
		today := time.Date(y, m, day, 0, 0, 0, 0, now.Location())
		if d.After(today) {
			problems = append(problems, "date cannot be in the future")
		}
		if d.Before(today.AddDate(-1, 0, 0)) {
			problems = append(problems, "date cannot be more than one year in the past")
		}
	}
	return newValidationError(ErrInvalidSession, problems)
}

func validateGoals(g models.Goals) error {
	var problems []string
	positive := []struct {
		name  string
		value int
	}{
		{"monthly.books", g.Monthly.Books},
		{"monthly.pages", g.Monthly.Pages},
		{"weekly.books", g.Weekly.Books},
		{"weekly.pages", g.Weekly.Pages},
	}
	for _, p := range positive {
		if p.value <= 0 {
			problems = append(problems, p.name+" must be positive")
		}
	}
	if g.Weekly.Books > g.Monthly.Books {
		problems = append(problems, "weekly.books cannot exceed monthly.books")
	}
	if g.Weekly.Pages > g.Monthly.Pages {
		problems = append(problems, "weekly.pages cannot exceed monthly.pages")
	}
	if g.Monthly.Books > maxMonthlyBooks {
		problems = append(problems, fmt.Sprintf("monthly.books must be at most %d", maxMonthlyBooks))
	}
	if g.Monthly.Pages > maxMonthlyPages {
		problems = append(problems, fmt.Sprintf("monthly.pages must be at most %d", maxMonthlyPages))
	}
	return newValidationError(ErrInvalidGoals, problems)
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
