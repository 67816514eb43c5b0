package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mew228/Flowstate/internal/app/live"
	"github.com/mew228/Flowstate/internal/app/service"
	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/query"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	args := m.Called(ctx, userID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) Get(ctx context.Context, userID, id string) (domain.Task, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

type paidStub struct {
	paid bool
	err  error
}

func (p paidStub) IsPaid(context.Context, string) (bool, error) {
	return p.paid, p.err
}

var fixedNow = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

func newTaskService(repo *taskRepositoryMock, paid bool) *service.TaskService {
	return service.NewTaskService(repo, live.NewHub(repo), paidStub{paid: paid}).
		WithClock(func() time.Time { return fixedNow })
}

func TestTaskService_View_FiltersAndSorts(t *testing.T) {
	repo := new(taskRepositoryMock)
	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Task{
		{ID: "low", Text: "water plants", Priority: domain.PriorityLow, Category: "personal"},
		{ID: "high", Text: "file taxes", Priority: domain.PriorityHigh, Category: "personal"},
		{ID: "work", Text: "standup", Priority: domain.PriorityHigh, Category: "work"},
	}, nil).Once()
	svc := newTaskService(repo, true)
	defer svc.Close()

	got, err := svc.View(context.Background(), "u1", query.ViewParams{Category: "personal"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].ID)
	assert.Equal(t, "low", got[1].ID)

	// The second read is served from the live snapshot.
	_, err = svc.View(context.Background(), "u1", query.ViewParams{})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTaskService_View_RequiresPayment(t *testing.T) {
	repo := new(taskRepositoryMock)
	svc := newTaskService(repo, false)
	defer svc.Close()

	_, err := svc.View(context.Background(), "u1", query.ViewParams{})
	require.ErrorIs(t, err, domain.ErrPaymentRequired)
	repo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

func TestTaskService_View_PaidCheckError(t *testing.T) {
	repo := new(taskRepositoryMock)
	svc := service.NewTaskService(repo, live.NewHub(repo), paidStub{err: errors.New("disk")})
	defer svc.Close()

	_, err := svc.View(context.Background(), "u1", query.ViewParams{})
	require.Error(t, err)
}

func TestTaskService_Stats(t *testing.T) {
	completedAt := fixedNow.Add(-time.Hour)
	yesterday := fixedNow.AddDate(0, 0, -1)
	repo := new(taskRepositoryMock)
	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Task{
		{ID: "a", Completed: true, CompletedAt: &completedAt},
		{ID: "b", DueDate: &yesterday},
	}, nil).Once()
	svc := newTaskService(repo, true)
	defer svc.Close()

	stats, err := svc.Stats(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CompletedCount)
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, 50, stats.CompletionRate)
	assert.Equal(t, 1, stats.OverdueCount)
	assert.Equal(t, 1, stats.Weekly[6].Count)
}

func TestTaskService_Create_AppliesDefaults(t *testing.T) {
	repo := new(taskRepositoryMock)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(task domain.Task) bool {
		return task.UserID == "u1" &&
			task.Text == "plan trip" &&
			task.Priority == domain.PriorityMedium &&
			task.Category == domain.CategoryPersonal &&
			!task.Important &&
			!task.Completed &&
			len(task.Subtasks) == 2 &&
			task.Subtasks[0].ID != "" &&
			task.Subtasks[0].ID != task.Subtasks[1].ID
	})).Return(domain.Task{ID: "new", UserID: "u1", Text: "plan trip"}, nil).Once()
	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Task{{ID: "new"}}, nil).Once()
	svc := newTaskService(repo, true)
	defer svc.Close()

	created, err := svc.Create(context.Background(), "u1", domain.TaskInput{
		Text:           "  plan trip ",
		ActiveCategory: domain.CategoryAll,
		Subtasks: []domain.Subtask{
			{Text: "book flights"},
			{Text: "  "},
			{Text: "pack"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	repo.AssertExpectations(t)
}

func TestTaskService_Create_ImportantFromActiveCategoryOrPriority(t *testing.T) {
	high := domain.PriorityHigh
	repo := new(taskRepositoryMock)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(task domain.Task) bool {
		return task.Important && task.Category == "work"
	})).Return(domain.Task{ID: "x"}, nil).Twice()
	repo.On("ListByUser", mock.Anything, "u1").Return(nil, nil)
	svc := newTaskService(repo, true)
	defer svc.Close()

	_, err := svc.Create(context.Background(), "u1", domain.TaskInput{Text: "a", Priority: &high, ActiveCategory: "work"})
	require.NoError(t, err)

	work := "work"
	_, err = svc.Create(context.Background(), "u1", domain.TaskInput{Text: "b", Category: &work, ActiveCategory: domain.CategoryImportant})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTaskService_Create_RejectsBlankText(t *testing.T) {
	repo := new(taskRepositoryMock)
	svc := newTaskService(repo, true)

	_, err := svc.Create(context.Background(), "u1", domain.TaskInput{Text: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidTask)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaskService_Toggle_SetsAndClearsCompletedAt(t *testing.T) {
	repo := new(taskRepositoryMock)
	repo.On("Get", mock.Anything, "u1", "t1").Return(domain.Task{ID: "t1", UserID: "u1"}, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(task domain.Task) bool {
		return task.Completed && task.CompletedAt != nil && task.CompletedAt.Equal(fixedNow) && task.UpdatedAt.Equal(fixedNow)
	})).Return(domain.Task{ID: "t1", Completed: true, CompletedAt: &fixedNow}, nil).Once()
	repo.On("ListByUser", mock.Anything, "u1").Return(nil, nil)
	svc := newTaskService(repo, true)

	got, err := svc.Toggle(context.Background(), "u1", "t1")
	require.NoError(t, err)
	assert.True(t, got.Completed)

	repo.On("Get", mock.Anything, "u1", "t1").Return(domain.Task{ID: "t1", UserID: "u1", Completed: true, CompletedAt: &fixedNow}, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(task domain.Task) bool {
		return !task.Completed && task.CompletedAt == nil
	})).Return(domain.Task{ID: "t1"}, nil).Once()

	got, err = svc.Toggle(context.Background(), "u1", "t1")
	require.NoError(t, err)
	assert.False(t, got.Completed)
	repo.AssertExpectations(t)
}

func TestTaskService_Toggle_NotFound(t *testing.T) {
	repo := new(taskRepositoryMock)
	repo.On("Get", mock.Anything, "u1", "missing").Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	svc := newTaskService(repo, true)

	_, err := svc.Toggle(context.Background(), "u1", "missing")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskService_ToggleSubtask(t *testing.T) {
	repo := new(taskRepositoryMock)
	repo.On("Get", mock.Anything, "u1", "t1").Return(domain.Task{
		ID: "t1", UserID: "u1", Subtasks: []domain.Subtask{{ID: "s1", Text: "step"}},
	}, nil).Twice()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(task domain.Task) bool {
		return task.Subtasks[0].Completed
	})).Return(domain.Task{ID: "t1"}, nil).Once()
	repo.On("ListByUser", mock.Anything, "u1").Return(nil, nil)
	svc := newTaskService(repo, true)

	_, err := svc.ToggleSubtask(context.Background(), "u1", "t1", "s1")
	require.NoError(t, err)

	_, err = svc.ToggleSubtask(context.Background(), "u1", "t1", "nope")
	require.ErrorIs(t, err, domain.ErrSubtaskNotFound)
	repo.AssertExpectations(t)
}

func TestTaskService_Update_PatchesFields(t *testing.T) {
	text := "renamed"
	low := domain.PriorityLow
	repo := new(taskRepositoryMock)
	due := fixedNow.AddDate(0, 0, 3)
	repo.On("Get", mock.Anything, "u1", "t1").Return(domain.Task{
		ID: "t1", UserID: "u1", Text: "old", Priority: domain.PriorityHigh, DueDate: &due, Category: "work",
	}, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(task domain.Task) bool {
		return task.Text == "renamed" &&
			task.Priority == domain.PriorityLow &&
			task.DueDate == nil &&
			task.Category == "work"
	})).Return(domain.Task{ID: "t1", Text: "renamed"}, nil).Once()
	repo.On("ListByUser", mock.Anything, "u1").Return(nil, nil)
	svc := newTaskService(repo, true)

	got, err := svc.Update(context.Background(), "u1", "t1", domain.TaskPatch{
		Text:       &text,
		Priority:   &low,
		DueDateSet: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Text)
	repo.AssertExpectations(t)
}

func TestTaskService_Update_PriorityRederivesImportant(t *testing.T) {
	low := domain.PriorityLow
	high := domain.PriorityHigh
	keep := true
	repo := new(taskRepositoryMock)
	repo.On("Get", mock.Anything, "u1", "t1").Return(domain.Task{
		ID: "t1", UserID: "u1", Text: "ship", Priority: domain.PriorityHigh, Important: true,
	}, nil)
	repo.On("Get", mock.Anything, "u1", "t2").Return(domain.Task{
		ID: "t2", UserID: "u1", Text: "read", Priority: domain.PriorityLow,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(task domain.Task) bool {
		return task.ID == "t1" && task.Priority == domain.PriorityLow && !task.Important
	})).Return(domain.Task{ID: "t1"}, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(task domain.Task) bool {
		return task.ID == "t2" && task.Priority == domain.PriorityHigh && task.Important
	})).Return(domain.Task{ID: "t2"}, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(task domain.Task) bool {
		return task.ID == "t1" && task.Priority == domain.PriorityLow && task.Important
	})).Return(domain.Task{ID: "t1"}, nil).Once()
	repo.On("ListByUser", mock.Anything, "u1").Return(nil, nil)
	svc := newTaskService(repo, true)
	defer svc.Close()
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", "t1", domain.TaskPatch{Priority: &low})
	require.NoError(t, err)
	_, err = svc.Update(ctx, "u1", "t2", domain.TaskPatch{Priority: &high})
	require.NoError(t, err)
	// An explicit flag wins over the priority.
	_, err = svc.Update(ctx, "u1", "t1", domain.TaskPatch{Priority: &low, Important: &keep})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTaskService_Update_RejectsEmptyPatch(t *testing.T) {
	repo := new(taskRepositoryMock)
	svc := newTaskService(repo, true)

	_, err := svc.Update(context.Background(), "u1", "t1", domain.TaskPatch{})
	require.ErrorIs(t, err, domain.ErrInvalidTask)
}

func TestTaskService_Delete_ReadsOwnWrite(t *testing.T) {
	repo := new(taskRepositoryMock)
	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Task{{ID: "a"}, {ID: "b"}}, nil).Once()
	repo.On("Delete", mock.Anything, "u1", "b").Return(nil).Once()
	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Task{{ID: "a"}}, nil).Once()
	svc := newTaskService(repo, true)
	defer svc.Close()

	before, err := svc.View(context.Background(), "u1", query.ViewParams{})
	require.NoError(t, err)
	require.Len(t, before, 2)

	require.NoError(t, svc.Delete(context.Background(), "u1", "b"))

	after, err := svc.View(context.Background(), "u1", query.ViewParams{})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "a", after[0].ID)
	repo.AssertExpectations(t)
}

func TestTaskService_Delete_NotFound(t *testing.T) {
	repo := new(taskRepositoryMock)
	repo.On("Delete", mock.Anything, "u1", "x").Return(domain.ErrTaskNotFound).Once()
	svc := newTaskService(repo, true)

	require.ErrorIs(t, svc.Delete(context.Background(), "u1", "x"), domain.ErrTaskNotFound)
}

func TestTaskService_IdleBoardIsReloaded(t *testing.T) {
	repo := new(taskRepositoryMock)
	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Task{{ID: "a"}}, nil).Twice()
	repo.On("ListByUser", mock.Anything, "u2").Return([]domain.Task{{ID: "z"}}, nil).Once()

	clock := fixedNow
	svc := service.NewTaskService(repo, live.NewHub(repo), paidStub{paid: true}).
		WithClock(func() time.Time { return clock }).
		WithBoardIdleTimeout(10 * time.Minute)
	defer svc.Close()
	ctx := context.Background()

	_, err := svc.View(ctx, "u1", query.ViewParams{})
	require.NoError(t, err)
	clock = clock.Add(time.Minute)
	_, err = svc.View(ctx, "u1", query.ViewParams{})
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "ListByUser", 1)

	// Another user's read sweeps u1's board once it has been idle long enough.
	clock = clock.Add(11 * time.Minute)
	_, err = svc.View(ctx, "u2", query.ViewParams{})
	require.NoError(t, err)

	got, err := svc.View(ctx, "u1", query.ViewParams{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	repo.AssertExpectations(t)
}
