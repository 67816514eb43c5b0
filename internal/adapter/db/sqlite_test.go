package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mew228/Flowstate/internal/config"
	"github.com/mew228/Flowstate/internal/core/domain"
)

func TestSQLiteRoundTrip(t *testing.T) {
	conn, err := ConnectDB(&config.Config{
		DbDriver:   config.DriverSQLite,
		SqlitePath: filepath.Join(t.TempDir(), "tasks.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// Running the bootstrap twice is harmless.
	require.NoError(t, EnsureSchema(context.Background(), conn))

	repo := NewTaskRepository(conn)
	ctx := context.Background()
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, domain.Task{
		UserID:   "u1",
		Text:     "Plan sprint",
		Priority: domain.PriorityHigh,
		Category: "work",
		DueDate:  &due,
		Subtasks: []domain.Subtask{{ID: "s1", Text: "collect tickets"}},
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, domain.Task{UserID: "u2", Text: "Other user", Category: "personal"})
	require.NoError(t, err)

	tasks, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)
	assert.Equal(t, domain.PriorityHigh, tasks[0].Priority)
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, 1, tasks[0].DueDate.Day())
	require.Len(t, tasks[0].Subtasks, 1)

	now := time.Now()
	task := tasks[0]
	task.SetCompleted(true, now)
	require.NoError(t, task.ToggleSubtask("s1"))
	task.UpdatedAt = now

	updated, err := repo.Update(ctx, task)
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.NotNil(t, updated.CompletedAt)
	assert.True(t, updated.Subtasks[0].Completed)

	_, err = repo.Get(ctx, "u2", created.ID)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	require.NoError(t, repo.Delete(ctx, "u1", created.ID))
	tasks, err = repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
