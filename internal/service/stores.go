package service

import (
	"context"
	"time"

	"todoflow/internal/model"
)

// TaskStore is the slice of the task repository the pipeline needs. The
// store owns row-level consistency; the pipeline adds no locking of its
// own.
type TaskStore interface {
	Insert(ctx context.Context, task *model.Task) error
	OverdueUnreminded(ctx context.Context, now time.Time) ([]model.Task, error)
	MarkReminderSent(ctx context.Context, taskID uint, at time.Time) error
}

// ConversationStore is the append-only timeline the notification sink
// writes into.
type ConversationStore interface {
	LatestByUser(ctx context.Context, userID uint) (*model.Conversation, error)
	Create(ctx context.Context, userID uint) (*model.Conversation, error)
	AppendMessage(ctx context.Context, msg *model.Message) error
	Touch(ctx context.Context, conversationID uint, at time.Time) error
}
