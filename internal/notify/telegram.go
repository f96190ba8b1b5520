// Package notify holds outbound reminder channels beyond the
// conversation timeline.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"todoflow/internal/bus"
	"todoflow/internal/model"
	"todoflow/internal/service"
)

// UserDirectory resolves the user a reminder belongs to.
type UserDirectory interface {
	FindByID(ctx context.Context, userID uint) (*model.User, error)
}

// Sender is the slice of the Telegram API the channel uses.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram pushes reminder events to users who linked a chat. Users
// without a linked chat are skipped silently; this channel is an extra
// delivery path, the conversation timeline stays the durable record.
type Telegram struct {
	sender Sender
	users  UserDirectory
	log    *slog.Logger
}

func NewTelegram(sender Sender, users UserDirectory, log *slog.Logger) *Telegram {
	return &Telegram{sender: sender, users: users, log: log}
}

// HandleReminder is the bus handler for the reminders topic.
func (t *Telegram) HandleReminder(ctx context.Context, event any) error {
	evt, ok := event.(bus.ReminderEvent)
	if !ok {
		t.log.Warn("dropping malformed reminder event", "payload", fmt.Sprintf("%T", event))
		return nil
	}

	user, err := t.users.FindByID(ctx, evt.UserID)
	if err != nil {
		return fmt.Errorf("resolve user %d: %w", evt.UserID, err)
	}
	if user.TelegramChatID == nil {
		t.log.Debug("user has no linked telegram chat", "user_id", evt.UserID)
		return nil
	}

	msg := tgbotapi.NewMessage(*user.TelegramChatID, service.ReminderText(evt.Title, evt.MinutesUntilDue))
	if _, err := t.sender.Send(msg); err != nil {
		return fmt.Errorf("send telegram reminder for task %d: %w", evt.TaskID, err)
	}

	t.log.Info("telegram reminder delivered", "user_id", evt.UserID, "task_id", evt.TaskID)
	return nil
}
