package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoflow/internal/model"
)

func newTestDB(t *testing.T) *TaskRepository {
	t.Helper()
	db, err := NewDB(":memory:")
	require.NoError(t, err)
	return NewTaskRepository(db)
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestOverdueUnremindedPredicate(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2025, 12, 19, 10, 0, 0, 0, time.UTC)

	seed := []model.Task{
		{Title: "overdue pending", UserID: 1, Status: model.StatusPending, DueDate: ptrTime(now.Add(-time.Hour))},
		{Title: "future", UserID: 1, Status: model.StatusPending, DueDate: ptrTime(now.Add(time.Hour))},
		{Title: "already reminded", UserID: 1, Status: model.StatusPending, DueDate: ptrTime(now.Add(-time.Hour)), ReminderSent: true},
		{Title: "completed", UserID: 1, Status: model.StatusCompleted, DueDate: ptrTime(now.Add(-time.Hour))},
		{Title: "unscheduled", UserID: 1, Status: model.StatusPending},
	}
	for i := range seed {
		require.NoError(t, repo.Insert(ctx, &seed[i]))
	}

	overdue, err := repo.OverdueUnreminded(ctx, now)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "overdue pending", overdue[0].Title)
}

func TestMarkReminderSentExcludesTaskFromNextScan(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2025, 12, 19, 10, 0, 0, 0, time.UTC)

	task := model.Task{Title: "x", UserID: 1, Status: model.StatusPending, DueDate: ptrTime(now.Add(-time.Minute))}
	require.NoError(t, repo.Insert(ctx, &task))

	require.NoError(t, repo.MarkReminderSent(ctx, task.ID, now))

	overdue, err := repo.OverdueUnreminded(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, overdue)

	stored, err := repo.FindByID(ctx, 1, task.ID)
	require.NoError(t, err)
	assert.True(t, stored.ReminderSent)
}

func TestListByUserFiltersStatusAndScopesUser(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &model.Task{Title: "mine pending", UserID: 1, Status: model.StatusPending}))
	require.NoError(t, repo.Insert(ctx, &model.Task{Title: "mine done", UserID: 1, Status: model.StatusCompleted}))
	require.NoError(t, repo.Insert(ctx, &model.Task{Title: "theirs", UserID: 2, Status: model.StatusPending}))

	pending, err := repo.ListByUser(ctx, 1, model.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "mine pending", pending[0].Title)

	all, err := repo.ListByUser(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteScopesToOwner(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	task := model.Task{Title: "x", UserID: 1, Status: model.StatusPending}
	require.NoError(t, repo.Insert(ctx, &task))

	// Another user's delete must not touch the row.
	require.NoError(t, repo.Delete(ctx, 2, task.ID))
	_, err := repo.FindByID(ctx, 1, task.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 1, task.ID))
	_, err = repo.FindByID(ctx, 1, task.ID)
	assert.Error(t, err)
}
