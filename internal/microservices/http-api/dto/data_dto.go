package dto

import "bookplanner/internal/microservices/http-api/models"

// ExportPayload is the portable backup format. Fields are optional on
// import; readingStreak is derived and ignored when importing.
type ExportPayload struct {
	Books         []models.Book `json:"books"`
	Goals         *models.Goals `json:"goals,omitempty"`
	ReadingStreak int           `json:"readingStreak"`
	Notifications *bool         `json:"notifications,omitempty"`
	ExportDate    string        `json:"exportDate"`
}

type ImportSummary struct {
	Books         int  `json:"books"`
	Goals         bool `json:"goals"`
	Notifications bool `json:"notifications"`
}
