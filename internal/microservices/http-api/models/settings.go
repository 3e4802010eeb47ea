package models

import "time"

// Settings stores user preferences. Only one row exists.
type Settings struct {
	ID                   int       `gorm:"primaryKey;autoIncrement:false" json:"-"`
	NotificationsEnabled bool      `gorm:"not null;default:false" json:"notificationsEnabled"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Settings) TableName() string {
	return "settings"
}

const SettingsRowID = 1
