package model

import "time"

// User owns tasks and conversations. TelegramChatID is set for users
// who linked a Telegram chat for reminder delivery.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex"`
	Name           string
	TelegramChatID *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
