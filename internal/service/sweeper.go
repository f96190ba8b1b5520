package service

import (
	"context"
	"log/slog"
	"time"

	"todoflow/internal/bus"
)

// SweepResult reports what one sweep saw and did.
type SweepResult struct {
	TasksFound    int
	RemindersSent int
}

// Sweeper finds overdue tasks and fires one reminder per occurrence.
// The persisted reminder_sent flag, not event delivery, decides whether
// a task has been reminded: the flag is written only after a successful
// publish, and each write commits per task. A publish failure leaves
// the flag false so the next sweep retries. A crash between publish
// and flag write loses the write, so the task may be skipped: a missed
// reminder is preferred over a duplicate.
type Sweeper struct {
	tasks TaskStore
	pub   bus.Publisher
	log   *slog.Logger
}

func NewSweeper(tasks TaskStore, pub bus.Publisher, log *slog.Logger) *Sweeper {
	return &Sweeper{tasks: tasks, pub: pub, log: log}
}

// RunSweep executes one pass at the given instant. It is invoked by an
// external periodic trigger and is safe to call again immediately: the
// flag predicate makes repeat sweeps no-ops.
func (s *Sweeper) RunSweep(ctx context.Context, now time.Time) (SweepResult, error) {
	overdue, err := s.tasks.OverdueUnreminded(ctx, now)
	if err != nil {
		s.log.Error("overdue scan failed", "error", err)
		return SweepResult{}, err
	}

	result := SweepResult{TasksFound: len(overdue)}
	for _, task := range overdue {
		minutesOverdue := int(now.Sub(*task.DueDate).Minutes())

		evt := bus.ReminderEvent{
			EventType:       bus.EventTaskReminder,
			TaskID:          task.ID,
			UserID:          task.UserID,
			Title:           task.Title,
			Description:     task.Description,
			Priority:        task.Priority,
			DueDate:         task.DueDate,
			Tags:            task.TagList(),
			MinutesUntilDue: -minutesOverdue,
		}

		if !s.pub.Publish(ctx, bus.TopicReminders, evt) {
			// Flag stays false; the next sweep re-selects this task.
			s.log.Warn("reminder publish failed, will retry next sweep",
				"task_id", task.ID)
			continue
		}

		if err := s.tasks.MarkReminderSent(ctx, task.ID, now); err != nil {
			s.log.Error("failed to persist reminder flag",
				"task_id", task.ID, "error", err)
			continue
		}
		result.RemindersSent++
	}

	if result.TasksFound > 0 {
		s.log.Info("sweep finished",
			"tasks_found", result.TasksFound,
			"reminders_sent", result.RemindersSent)
	}
	return result, nil
}
