package dto

type UpdateNotificationsRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type NotificationStatusResponse struct {
	Enabled      bool   `json:"enabled"`
	NextReminder string `json:"nextReminder,omitempty"`
	DailyPages   int    `json:"dailyPages"`
	Clients      int    `json:"clients"`
}
