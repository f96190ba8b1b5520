package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"todoflow/internal/model"
)

// fakeTaskStore is an in-memory TaskStore for pipeline tests.
type fakeTaskStore struct {
	tasks      []model.Task
	nextID     uint
	insertErr  error
	markErr    error
	overdueErr error
}

func newFakeTaskStore(tasks ...model.Task) *fakeTaskStore {
	s := &fakeTaskStore{tasks: tasks}
	for _, t := range tasks {
		if t.ID > s.nextID {
			s.nextID = t.ID
		}
	}
	return s
}

func (s *fakeTaskStore) Insert(_ context.Context, task *model.Task) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.nextID++
	task.ID = s.nextID
	s.tasks = append(s.tasks, *task)
	return nil
}

func (s *fakeTaskStore) OverdueUnreminded(_ context.Context, now time.Time) ([]model.Task, error) {
	if s.overdueErr != nil {
		return nil, s.overdueErr
	}
	var out []model.Task
	for _, t := range s.tasks {
		if t.Status == model.StatusPending && t.DueDate != nil && t.DueDate.Before(now) && !t.ReminderSent {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeTaskStore) MarkReminderSent(_ context.Context, taskID uint, at time.Time) error {
	if s.markErr != nil {
		return s.markErr
	}
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			s.tasks[i].ReminderSent = true
			s.tasks[i].UpdatedAt = at
			return nil
		}
	}
	return errors.New("task not found")
}

func (s *fakeTaskStore) byID(taskID uint) *model.Task {
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			return &s.tasks[i]
		}
	}
	return nil
}

// fakePublisher records published events and can be told to fail.
type fakePublisher struct {
	topics []string
	events []any
	fail   bool
}

func (p *fakePublisher) Publish(_ context.Context, topic string, event any) bool {
	if p.fail {
		return false
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return true
}

// fakeConversationStore is an in-memory ConversationStore.
type fakeConversationStore struct {
	conversations []model.Conversation
	messages      []model.Message
	nextID        uint
}

func (s *fakeConversationStore) LatestByUser(_ context.Context, userID uint) (*model.Conversation, error) {
	var latest *model.Conversation
	for i := range s.conversations {
		c := &s.conversations[i]
		if c.UserID != userID {
			continue
		}
		if latest == nil || c.UpdatedAt.After(latest.UpdatedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, nil
	}
	conv := *latest
	return &conv, nil
}

func (s *fakeConversationStore) Create(_ context.Context, userID uint) (*model.Conversation, error) {
	s.nextID++
	conv := model.Conversation{ID: s.nextID, UserID: userID}
	s.conversations = append(s.conversations, conv)
	return &conv, nil
}

func (s *fakeConversationStore) AppendMessage(_ context.Context, msg *model.Message) error {
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *fakeConversationStore) Touch(_ context.Context, conversationID uint, at time.Time) error {
	for i := range s.conversations {
		if s.conversations[i].ID == conversationID {
			s.conversations[i].UpdatedAt = at
			return nil
		}
	}
	return errors.New("conversation not found")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptrTime(t time.Time) *time.Time { return &t }
