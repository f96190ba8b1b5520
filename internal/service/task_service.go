package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"todoflow/internal/bus"
	"todoflow/internal/model"
	"todoflow/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	Priority    model.TaskPriority
	DueDate     *time.Time
	Tags        []string
	Recurrence  model.Recurrence
}

// TaskUpdate patches an existing task. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *model.TaskPriority
	DueDate     *time.Time
	Tags        []string
	Recurrence  *model.Recurrence
}

// TaskService wraps task mutations and fans each one out as a
// lifecycle event. The mutation commits first; the publish afterwards
// is best-effort and a failed publish never fails the mutation.
type TaskService struct {
	tasks *repository.TaskRepository
	pub   bus.Publisher
	log   *slog.Logger
	now   func() time.Time
}

func NewTaskService(tasks *repository.TaskRepository, pub bus.Publisher, log *slog.Logger) *TaskService {
	return &TaskService{
		tasks: tasks,
		pub:   pub,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *TaskService) Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !input.Recurrence.Valid() {
		return nil, fmt.Errorf("unknown recurrence %q", input.Recurrence)
	}
	if input.Recurrence != model.RecurrenceNone && input.DueDate == nil {
		return nil, fmt.Errorf("recurring tasks need a due date")
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	task := model.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Status:      model.StatusPending,
		Priority:    priority,
		DueDate:     input.DueDate,
		Tags:        model.EncodeTags(input.Tags),
		Recurrence:  input.Recurrence,
	}

	if err := s.tasks.Insert(ctx, &task); err != nil {
		return nil, err
	}

	s.publish(ctx, bus.EventTaskCreated, &task)
	return &task, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	return s.tasks.FindByID(ctx, userID, taskID)
}

func (s *TaskService) List(ctx context.Context, userID uint, status model.TaskStatus) ([]model.Task, error) {
	return s.tasks.ListByUser(ctx, userID, status)
}

func (s *TaskService) Update(ctx context.Context, userID, taskID uint, patch TaskUpdate) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.Tags != nil {
		task.Tags = model.EncodeTags(patch.Tags)
	}
	if patch.Recurrence != nil {
		if !patch.Recurrence.Valid() {
			return nil, fmt.Errorf("unknown recurrence %q", *patch.Recurrence)
		}
		task.Recurrence = *patch.Recurrence
	}
	task.UpdatedAt = s.now()

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	s.publish(ctx, bus.EventTaskUpdated, task)
	return task, nil
}

// Complete moves a task to completed. Completing an already completed
// task is a no-op and publishes nothing.
func (s *TaskService) Complete(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status == model.StatusCompleted {
		return task, nil
	}

	task.Status = model.StatusCompleted
	task.UpdatedAt = s.now()
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	s.publish(ctx, bus.EventTaskCompleted, task)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	return s.tasks.Delete(ctx, userID, taskID)
}

func (s *TaskService) publish(ctx context.Context, eventType bus.EventType, task *model.Task) {
	evt := bus.NewTaskEvent(eventType, task, s.now())
	if !s.pub.Publish(ctx, bus.TopicTaskEvents, evt) {
		s.log.Warn("lifecycle event publish failed",
			"event_type", string(eventType), "task_id", task.ID)
	}
}
