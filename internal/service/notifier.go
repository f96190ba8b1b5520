package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"todoflow/internal/bus"
	"todoflow/internal/model"
)

// Notifier appends reminder events into the owning user's conversation
// timeline. The only state it originates is the lazily created
// conversation for users who have none yet.
type Notifier struct {
	conversations ConversationStore
	log           *slog.Logger
	now           func() time.Time
}

func NewNotifier(conversations ConversationStore, log *slog.Logger) *Notifier {
	return &Notifier{
		conversations: conversations,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// HandleReminder is the bus handler for the reminders topic.
func (n *Notifier) HandleReminder(ctx context.Context, event any) error {
	evt, ok := event.(bus.ReminderEvent)
	if !ok {
		n.log.Warn("dropping malformed reminder event", "payload", fmt.Sprintf("%T", event))
		return nil
	}

	conv, err := n.conversations.LatestByUser(ctx, evt.UserID)
	if err != nil {
		return err
	}
	if conv == nil {
		conv, err = n.conversations.Create(ctx, evt.UserID)
		if err != nil {
			return err
		}
		n.log.Info("created conversation for reminders",
			"conversation_id", conv.ID, "user_id", evt.UserID)
	}

	msg := &model.Message{
		ConversationID: conv.ID,
		Role:           model.RoleAssistant,
		Content:        ReminderText(evt.Title, evt.MinutesUntilDue),
	}
	if err := n.conversations.AppendMessage(ctx, msg); err != nil {
		return err
	}
	if err := n.conversations.Touch(ctx, conv.ID, n.now()); err != nil {
		return err
	}

	n.log.Info("reminder stored",
		"conversation_id", conv.ID, "user_id", evt.UserID, "task_id", evt.TaskID)
	return nil
}

// ReminderText renders the notification line. Minutes at or below zero
// (overdue tasks arrive negative) clamp to "now" rather than printing a
// negative count.
func ReminderText(title string, minutesUntilDue int) string {
	var when string
	switch {
	case minutesUntilDue <= 0:
		when = "now"
	case minutesUntilDue == 1:
		when = "in 1 minute"
	default:
		when = fmt.Sprintf("in %d minutes", minutesUntilDue)
	}
	return fmt.Sprintf("⏰ REMINDER: Your task '%s' is due %s!", title, when)
}
