package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mew228/Flowstate/internal/app/live"
	"github.com/mew228/Flowstate/internal/app/state"
	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/ports"
	"github.com/mew228/Flowstate/internal/core/query"
)

type PaidChecker interface {
	IsPaid(ctx context.Context, userID string) (bool, error)
}

// DefaultBoardIdleTimeout is how long a user's board outlives their last read.
const DefaultBoardIdleTimeout = 10 * time.Minute

type TaskService struct {
	taskRepository ports.TaskRepository
	hub            *live.Hub
	paid           PaidChecker
	now            func() time.Time
	idleTimeout    time.Duration

	mu        sync.Mutex
	boards    map[string]*boardEntry
	lastSweep time.Time
}

type boardEntry struct {
	board    *live.Board
	lastUsed time.Time
	// readers counts snapshot calls between acquire and release.
	readers  int
}

func NewTaskService(taskRepository ports.TaskRepository, hub *live.Hub, paid PaidChecker) *TaskService {
	return &TaskService{
		taskRepository: taskRepository,
		hub:            hub,
		paid:           paid,
		now:            time.Now,
		idleTimeout:    DefaultBoardIdleTimeout,
		boards:         make(map[string]*boardEntry),
	}
}

// WithClock sets the time source. Its location decides calendar days for stats.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// WithBoardIdleTimeout sets how long an unread board is kept before its
// subscription is closed. The next read for that user loads a fresh one.
func (s *TaskService) WithBoardIdleTimeout(d time.Duration) *TaskService {
	if d > 0 {
		s.idleTimeout = d
	}
	return s
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) View(ctx context.Context, userID string, params query.ViewParams) ([]domain.Task, error) {
	tasks, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return query.ComputeView(tasks, params), nil
}

func (s *TaskService) Stats(ctx context.Context, userID string) (query.Stats, error) {
	tasks, err := s.snapshot(ctx, userID)
	if err != nil {
		return query.Stats{}, err
	}
	return query.ComputeStats(tasks, s.now()), nil
}

func (s *TaskService) Create(ctx context.Context, userID string, input domain.TaskInput) (domain.Task, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return domain.Task{}, domain.ErrInvalidTask
	}

	priority := domain.PriorityMedium
	if input.Priority != nil {
		priority = domain.NormalizePriority(string(*input.Priority))
	}

	category := state.DefaultTaskCategory(input.ActiveCategory)
	if input.Category != nil && strings.TrimSpace(*input.Category) != "" {
		category = strings.TrimSpace(*input.Category)
	}

	now := s.now()
	task := domain.Task{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
		Text:      text,
		Priority:  priority,
		Category:  category,
		Important: input.Important || input.ActiveCategory == domain.CategoryImportant || priority == domain.PriorityHigh,
		DueDate:   input.DueDate,
		Subtasks:  normalizeSubtasks(input.Subtasks),
	}

	created, err := s.taskRepository.Create(ctx, task)
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.publish(ctx, userID)
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, userID, id string, patch domain.TaskPatch) (domain.Task, error) {
	if patch.Empty() {
		return domain.Task{}, domain.ErrInvalidTask
	}

	return s.mutate(ctx, userID, id, func(task *domain.Task) error {
		if patch.Text != nil {
			text := strings.TrimSpace(*patch.Text)
			if text == "" {
				return domain.ErrInvalidTask
			}
			task.Text = text
		}
		if patch.Priority != nil {
			task.Priority = domain.NormalizePriority(string(*patch.Priority))
		}
		if patch.Category != nil {
			task.Category = strings.TrimSpace(*patch.Category)
		}
		switch {
		case patch.Important != nil:
			task.Important = *patch.Important
		case patch.Priority != nil:
			// A priority change without an explicit flag re-derives it.
			task.Important = task.Priority == domain.PriorityHigh
		}
		if patch.DueDateSet {
			task.DueDate = patch.DueDate
		}
		if patch.SubtaskSet {
			task.Subtasks = normalizeSubtasks(patch.Subtasks)
		}
		if patch.Completed != nil {
			task.SetCompleted(*patch.Completed, s.now())
		}
		return nil
	})
}

func (s *TaskService) Toggle(ctx context.Context, userID, id string) (domain.Task, error) {
	return s.mutate(ctx, userID, id, func(task *domain.Task) error {
		task.SetCompleted(!task.Completed, s.now())
		return nil
	})
}

func (s *TaskService) ToggleSubtask(ctx context.Context, userID, id, subtaskID string) (domain.Task, error) {
	return s.mutate(ctx, userID, id, func(task *domain.Task) error {
		return task.ToggleSubtask(subtaskID)
	})
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	if err := s.taskRepository.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.publish(ctx, userID)
	return nil
}

// Close stops every live board.
func (s *TaskService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, entry := range s.boards {
		entry.board.Close()
		delete(s.boards, userID)
	}
}

func (s *TaskService) mutate(ctx context.Context, userID, id string, apply func(task *domain.Task) error) (domain.Task, error) {
	task, err := s.taskRepository.Get(ctx, userID, id)
	if err != nil {
		return domain.Task{}, err
	}

	if err := apply(&task); err != nil {
		return domain.Task{}, err
	}
	task.UpdatedAt = s.now()

	updated, err := s.taskRepository.Update(ctx, task)
	if err != nil {
		return domain.Task{}, err
	}

	s.publish(ctx, userID)
	return updated, nil
}

func (s *TaskService) snapshot(ctx context.Context, userID string) ([]domain.Task, error) {
	paid, err := s.paid.IsPaid(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, domain.ErrPaymentRequired
	}

	board, release := s.acquireBoard(userID)
	defer release()
	if err := board.Watch(ctx, live.Scope{UserID: userID, Paid: paid}); err != nil {
		return nil, fmt.Errorf("watch tasks: %w", err)
	}
	return board.Tasks(), nil
}

// acquireBoard returns the user's board, creating it on first use. The board
// is not evicted until release is called.
func (s *TaskService) acquireBoard(userID string) (*live.Board, func()) {
	s.mu.Lock()
	now := s.now()
	idle := s.sweepLocked(now)

	entry, ok := s.boards[userID]
	if !ok {
		entry = &boardEntry{board: live.NewBoard(s.hub, s.taskRepository)}
		s.boards[userID] = entry
	}
	entry.readers++
	entry.lastUsed = now
	s.mu.Unlock()

	closeBoards(idle)

	return entry.board, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		entry.readers--
		entry.lastUsed = s.now()
	}
}

// sweepLocked drops boards nobody has read for idleTimeout and returns them
// for closing outside the lock. It scans at most once per half timeout.
func (s *TaskService) sweepLocked(now time.Time) []*live.Board {
	if now.Sub(s.lastSweep) < s.idleTimeout/2 {
		return nil
	}
	s.lastSweep = now

	var idle []*live.Board
	for userID, entry := range s.boards {
		if entry.readers == 0 && now.Sub(entry.lastUsed) >= s.idleTimeout {
			idle = append(idle, entry.board)
			delete(s.boards, userID)
		}
	}
	if len(idle) > 0 {
		zap.L().Debug("idle task boards closed", zap.Int("count", len(idle)), zap.Int("open", len(s.boards)))
	}
	return idle
}

func closeBoards(boards []*live.Board) {
	for _, board := range boards {
		board.Close()
	}
}

// publish refreshes every subscriber and applies the snapshot to the user's
// board directly, so the writer reads its own write. Failures are logged only:
// the write itself already succeeded.
func (s *TaskService) publish(ctx context.Context, userID string) {
	snap, err := s.hub.Refresh(ctx, userID)
	if err != nil {
		zap.L().Warn("task snapshot not published", zap.String("user_id", userID), zap.Error(err))
		return
	}

	s.mu.Lock()
	entry, ok := s.boards[userID]
	s.mu.Unlock()
	if ok {
		entry.board.Apply(snap)
	}
}

// normalizeSubtasks drops blank entries and gives every subtask a unique id.
func normalizeSubtasks(subtasks []domain.Subtask) []domain.Subtask {
	out := make([]domain.Subtask, 0, len(subtasks))
	seen := make(map[string]struct{}, len(subtasks))
	for _, st := range subtasks {
		text := strings.TrimSpace(st.Text)
		if text == "" {
			continue
		}
		id := st.ID
		if _, dup := seen[id]; id == "" || dup {
			id = uuid.NewString()
		}
		seen[id] = struct{}{}
		out = append(out, domain.Subtask{ID: id, Text: text, Completed: st.Completed})
	}
	return out
}
