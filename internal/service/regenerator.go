package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"todoflow/internal/bus"
	"todoflow/internal/model"
)

// Regenerator spawns the successor task when a recurring task
// completes. It is driven purely by completed lifecycle events; a
// dropped event means a missed occurrence, which is accepted. No
// idempotency key is stored, so a redelivered completion would spawn a
// second successor; delivery here is at-most-once, which keeps that a
// theoretical gap.
type Regenerator struct {
	tasks TaskStore
	log   *slog.Logger
	now   func() time.Time
}

func NewRegenerator(tasks TaskStore, log *slog.Logger) *Regenerator {
	return &Regenerator{
		tasks: tasks,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// HandleTaskEvent is the bus handler for the task-events topic. Events
// other than task.completed are ignored; malformed payloads are warned
// about and dropped.
func (g *Regenerator) HandleTaskEvent(ctx context.Context, event any) error {
	evt, ok := event.(bus.TaskEvent)
	if !ok {
		g.log.Warn("dropping malformed task event", "payload", fmt.Sprintf("%T", event))
		return nil
	}
	if evt.EventType != bus.EventTaskCompleted {
		return nil
	}
	_, err := g.Regenerate(ctx, evt)
	return err
}

// Regenerate creates the successor for one completion event. It
// returns (nil, nil) when the task is not recurring.
func (g *Regenerator) Regenerate(ctx context.Context, evt bus.TaskEvent) (*model.Task, error) {
	if evt.TaskID == 0 {
		g.log.Warn("completed event without task id, dropping")
		return nil, nil
	}
	if evt.Recurrence == model.RecurrenceNone {
		g.log.Debug("task has no recurrence, skipping", "task_id", evt.TaskID)
		return nil, nil
	}
	if !evt.Recurrence.Valid() {
		g.log.Warn("unknown recurrence value, dropping event",
			"task_id", evt.TaskID, "recurrence", string(evt.Recurrence))
		return nil, nil
	}

	completedAt := g.now()
	if evt.CompletedAt != nil {
		completedAt = *evt.CompletedAt
	}
	nextDue := NextDue(evt.Recurrence, completedAt)

	successor := &model.Task{
		UserID:       evt.UserID,
		Title:        evt.Title,
		Description:  evt.Description,
		Status:       model.StatusPending,
		Priority:     evt.Priority,
		DueDate:      &nextDue,
		Tags:         model.EncodeTags(evt.Tags),
		Recurrence:   evt.Recurrence,
		ReminderSent: false,
	}

	if err := g.tasks.Insert(ctx, successor); err != nil {
		g.log.Error("failed to create successor task",
			"source_task_id", evt.TaskID, "error", err)
		return nil, fmt.Errorf("regenerate task %d: %w", evt.TaskID, err)
	}

	g.log.Info("created recurring successor",
		"task_id", successor.ID, "source_task_id", evt.TaskID,
		"due_date", nextDue)
	return successor, nil
}
