package stats

import (
	"slices"
	"strings"

	"bookplanner/internal/microservices/http-api/models"
)

// SpeedSample is one session's reading speed in pages per hour.
type SpeedSample struct {
	Date    string  `json:"date"`
	Pages   int     `json:"pages"`
	Minutes int     `json:"minutes"`
	Speed   float64 `json:"speed"`
}

// ReadingSpeedData flattens every session into a speed sample ordered by
// date. Samples sharing a date keep book order, then session order.
func ReadingSpeedData(books []models.Book) []SpeedSample {
	samples := make([]SpeedSample, 0)
	for _, book := range books {
		for _, s := range book.ReadingSessions {
			samples = append(samples, SpeedSample{
				Date:    s.Date,
				Pages:   s.Pages,
				Minutes: s.Minutes,
				Speed:   round1(pagesPerHour(s.Pages, s.Minutes)),
			})
		}
	}

	// YYYY-MM-DD compares chronologically as a string.
	slices.SortStableFunc(samples, func(a, b SpeedSample) int {
		return strings.Compare(a.Date, b.Date)
	})
	return samples
}

// LastSamples returns at most n trailing samples. n <= 0 returns all.
func LastSamples(samples []SpeedSample, n int) []SpeedSample {
	if n <= 0 || n >= len(samples) {
		return samples
	}
	return samples[len(samples)-n:]
}
