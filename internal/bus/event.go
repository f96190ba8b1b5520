package bus

import (
	"time"

	"todoflow/internal/model"
)

// Topics the pipeline publishes to. Lifecycle events and reminders are
// kept apart so consumers subscribe only to what they handle.
const (
	TopicTaskEvents = "task-events"
	TopicReminders  = "reminders"
)

// EventType discriminates event payloads on a topic.
type EventType string

const (
	EventTaskCreated   EventType = "task.created"
	EventTaskUpdated   EventType = "task.updated"
	EventTaskCompleted EventType = "task.completed"
	EventTaskReminder  EventType = "task.reminder"
)

// TaskEvent is an immutable snapshot of a task at the moment of a
// lifecycle mutation. CompletedAt is set only for completed events.
type TaskEvent struct {
	EventType   EventType
	TaskID      uint
	UserID      uint
	Title       string
	Description string
	Status      model.TaskStatus
	Priority    model.TaskPriority
	DueDate     *time.Time
	Tags        []string
	Recurrence  model.Recurrence
	Timestamp   time.Time
	CompletedAt *time.Time
}

// NewTaskEvent builds the snapshot payload for a lifecycle mutation.
func NewTaskEvent(eventType EventType, task *model.Task, at time.Time) TaskEvent {
	evt := TaskEvent{
		EventType:   eventType,
		TaskID:      task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Tags:        task.TagList(),
		Recurrence:  task.Recurrence,
		Timestamp:   at,
	}
	if eventType == EventTaskCompleted {
		completedAt := at
		evt.CompletedAt = &completedAt
	}
	return evt
}

// ReminderEvent notifies that a task occurrence is due. MinutesUntilDue
// is signed: negative values mean the task is already overdue.
type ReminderEvent struct {
	EventType       EventType
	TaskID          uint
	UserID          uint
	Title           string
	Description     string
	Priority        model.TaskPriority
	DueDate         *time.Time
	Tags            []string
	MinutesUntilDue int
}
