package models

import "time"

// Notification is a message pushed to connected clients.
type Notification struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Body               string    `json:"body"`
	Tag                string    `json:"tag"`
	RequireInteraction bool      `json:"requireInteraction"`
	CreatedAt          time.Time `json:"createdAt"`
}

const (
	TagWelcome       = "welcome"
	TagTest          = "test"
	TagDailyReminder = "daily-reminder"
)
