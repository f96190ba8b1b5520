package model

import (
	"encoding/json"
	"time"
)

// TaskStatus is the lifecycle state of a task. Transitions are forward
// only: a pending task may become completed, never the reverse.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

// TaskPriority orders tasks for presentation; the pipeline copies it
// verbatim into regenerated successors.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Recurrence names the schedule on which a completed task regenerates.
// Empty means the task is one-shot.
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Valid reports whether r is a known recurrence pattern. The empty
// pattern is valid and means "do not regenerate".
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// Task represents a single item in the todo list.
type Task struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"index"`
	Title        string
	Description  string
	Status       TaskStatus   `gorm:"default:pending"`
	Priority     TaskPriority `gorm:"default:medium"`
	DueDate      *time.Time
	Tags         string     `gorm:"default:'[]'"` // JSON-encoded array
	Recurrence   Recurrence // empty for one-shot tasks
	ReminderSent bool       `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TagList decodes the JSON tags column. A malformed or empty column
// decodes to nil rather than failing.
func (t *Task) TagList() []string {
	if t.Tags == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(t.Tags), &tags); err != nil {
		return nil
	}
	return tags
}

// EncodeTags serializes tags into the JSON column representation.
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
