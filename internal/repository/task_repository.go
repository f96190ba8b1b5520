package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todoflow/internal/model"
)

// TaskRepository handles CRUD for tasks and the reminder flag.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Insert(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser returns the user's tasks, optionally filtered by status.
// Tasks with a due date come first, nearest deadline on top.
func (r *TaskRepository) ListByUser(ctx context.Context, userID uint, status model.TaskStatus) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var tasks []model.Task
	if err := q.Order("due_date IS NULL, due_date ASC, created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// OverdueUnreminded selects the tasks eligible for a reminder: pending,
// scheduled, past due, and not yet flagged. The persisted flag is the
// sole deduplication mechanism, so this predicate must stay in sync
// with MarkReminderSent.
func (r *TaskRepository) OverdueUnreminded(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ? AND reminder_sent = ?",
			model.StatusPending, now, false).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("select overdue tasks: %w", err)
	}
	return tasks, nil
}

// MarkReminderSent flags one task as reminded. Committed per task, not
// batched, so a crash mid-sweep never re-fires already-flagged tasks.
func (r *TaskRepository) MarkReminderSent(ctx context.Context, taskID uint, at time.Time) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]any{"reminder_sent": true, "updated_at": at}).Error; err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	return nil
}

// Delete removes a task for the given user.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).
		Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
