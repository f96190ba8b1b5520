package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoflow/internal/bus"
	"todoflow/internal/model"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if s.err != nil {
		return tgbotapi.Message{}, s.err
	}
	s.sent = append(s.sent, c)
	return tgbotapi.Message{}, nil
}

type fakeDirectory struct {
	users map[uint]*model.User
}

func (d *fakeDirectory) FindByID(_ context.Context, userID uint) (*model.User, error) {
	user, ok := d.users[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleReminderSendsToLinkedChat(t *testing.T) {
	chatID := int64(12345)
	dir := &fakeDirectory{users: map[uint]*model.User{
		7: {ID: 7, TelegramChatID: &chatID},
	}}
	sender := &fakeSender{}
	tg := NewTelegram(sender, dir, discardLogger())

	evt := bus.ReminderEvent{EventType: bus.EventTaskReminder, TaskID: 1, UserID: 7, Title: "pay rent", MinutesUntilDue: -2}
	require.NoError(t, tg.HandleReminder(context.Background(), evt))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, chatID, msg.ChatID)
	assert.Equal(t, "⏰ REMINDER: Your task 'pay rent' is due now!", msg.Text)
}

func TestHandleReminderSkipsUnlinkedUser(t *testing.T) {
	dir := &fakeDirectory{users: map[uint]*model.User{
		7: {ID: 7},
	}}
	sender := &fakeSender{}
	tg := NewTelegram(sender, dir, discardLogger())

	require.NoError(t, tg.HandleReminder(context.Background(), bus.ReminderEvent{UserID: 7}))
	assert.Empty(t, sender.sent)
}

func TestHandleReminderPropagatesSendFailure(t *testing.T) {
	chatID := int64(12345)
	dir := &fakeDirectory{users: map[uint]*model.User{
		7: {ID: 7, TelegramChatID: &chatID},
	}}
	sender := &fakeSender{err: errors.New("telegram unreachable")}
	tg := NewTelegram(sender, dir, discardLogger())

	assert.Error(t, tg.HandleReminder(context.Background(), bus.ReminderEvent{UserID: 7}))
}

func TestHandleReminderDropsMalformedPayload(t *testing.T) {
	sender := &fakeSender{}
	tg := NewTelegram(sender, &fakeDirectory{}, discardLogger())

	require.NoError(t, tg.HandleReminder(context.Background(), "garbage"))
	assert.Empty(t, sender.sent)
}
