package stats

import (
	"math"
	"slices"
	"strings"
	"time"

	"bookplanner/internal/microservices/http-api/models"
)

type CategoryShare struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Percent  int    `json:"percent"`
}

type Insights struct {
	MostActiveDay         string          `json:"mostActiveDay"`
	WeekdaySessions       [7]int          `json:"weekdaySessions"`
	TotalSessions         int             `json:"totalSessions"`
	AverageSessionMinutes float64         `json:"averageSessionMinutes"`
	CompletionRate        float64         `json:"completionRate"`
	Categories            []CategoryShare `json:"categories"`
}

// ComputeInsights summarises reading habits. WeekdaySessions is indexed
// Sunday first; MostActiveDay is empty when there are no sessions.
func ComputeInsights(books []models.Book) Insights {
	in := Insights{Categories: CategoryDistribution(books)}

	totalMinutes := 0
	completed := 0
	for _, book := range books {
		if book.Status == models.StatusCompleted {
			completed++
		}
		for _, s := range book.ReadingSessions {
			in.TotalSessions++
			totalMinutes += s.Minutes
			if d, ok := ParseDate(s.Date, time.UTC); ok {
				in.WeekdaySessions[d.Weekday()]++
			}
		}
	}

	if in.TotalSessions > 0 {
		in.AverageSessionMinutes = round1(float64(totalMinutes) / float64(in.TotalSessions))
		best := 0
		for day, n := range in.WeekdaySessions {
			if n > in.WeekdaySessions[best] {
				best = day
			}
		}
		in.MostActiveDay = time.Weekday(best).String()
	}
	if len(books) > 0 {
		in.CompletionRate = round1(float64(completed) / float64(len(books)) * 100)
	}
	return in
}

// CategoryDistribution counts books per category, largest first, ties by name.
func CategoryDistribution(books []models.Book) []CategoryShare {
	counts := CountByCategory(books)
	shares := make([]CategoryShare, 0, len(counts))
	for category, n := range counts {
		shares = append(shares, CategoryShare{
			Category: category,
			Count:    n,
			Percent:  int(math.Round(float64(n) / float64(len(books)) * 100)),
		})
	}
	slices.SortFunc(shares, func(a, b CategoryShare) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Category, b.Category)
	})
	return shares
}

// CountByCategory groups case-sensitively.
func CountByCategory(books []models.Book) map[string]int {
	counts := make(map[string]int)
	for _, book := range books {
		counts[book.Category]++
	}
	return counts
}
