package stats

import (
	"time"

	"bookplanner/internal/microservices/http-api/models"
)

// ReadingStreak counts consecutive days with at least one session, ending
// today. If nothing was logged today the streak may still end yesterday.
func ReadingStreak(books []models.Book, now time.Time) int {
	days := make(map[string]struct{})
	for _, book := range books {
		for _, s := range book.ReadingSessions {
			if d, ok := ParseDate(s.Date, now.Location()); ok {
				days[d.Format(DateLayout)] = struct{}{}
			}
		}
	}

	day := midnight(now)
	if _, ok := days[day.Format(DateLayout)]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := days[day.Format(DateLayout)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}
