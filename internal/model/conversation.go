package model

import "time"

// MessageRole identifies the author of a timeline entry.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Conversation is a user's message timeline. UpdatedAt is bumped on
// every appended message so "most recently updated" selects the active
// conversation.
type Conversation struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is one append-only entry in a conversation. The reminder
// pipeline appends assistant-role messages and never edits them.
type Message struct {
	ID             uint `gorm:"primaryKey"`
	ConversationID uint `gorm:"index"`
	Role           MessageRole
	Content        string
	CreatedAt      time.Time
}
