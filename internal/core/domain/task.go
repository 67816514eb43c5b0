package domain

import (
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities for sorting, high first. Unknown values rank as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// NormalizePriority maps free-form input onto a known priority, falling back to medium.
func NormalizePriority(value string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(value)))
	if !p.Valid() {
		return PriorityMedium
	}
	return p
}

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

func ParseStatusFilter(value string) StatusFilter {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(value))) {
	case StatusActive:
		return StatusActive
	case StatusCompleted:
		return StatusCompleted
	default:
		return StatusAll
	}
}

type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID          string
	UserID      string
	Text        string
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Priority    Priority
	Category    string
	Important   bool
	DueDate     *time.Time
	Subtasks    []Subtask
}

// CalendarDay returns midnight UTC of t's own calendar date. Due dates are
// dates, not instants, so stores keep them in this form whatever the zone
// they were parsed in.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SetCompleted keeps CompletedAt in step with Completed.
func (t *Task) SetCompleted(completed bool, now time.Time) {
	if t.Completed == completed {
		return
	}
	t.Completed = completed
	if completed {
		at := now
		t.CompletedAt = &at
		return
	}
	t.CompletedAt = nil
}

func (t *Task) ToggleSubtask(subtaskID string) error {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			t.Subtasks[i].Completed = !t.Subtasks[i].Completed
			return nil
		}
	}
	return ErrSubtaskNotFound
}

func (t Task) CompletedSubtasks() int {
	count := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			count++
		}
	}
	return count
}

// IsImportant reports whether the task belongs to the important virtual category.
func (t Task) IsImportant() bool {
	return t.Important || t.Priority == PriorityHigh
}

// Clone returns a copy that shares no mutable state with t.
func (t Task) Clone() Task {
	out := t
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		out.CompletedAt = &v
	}
	if t.DueDate != nil {
		v := *t.DueDate
		out.DueDate = &v
	}
	if t.Subtasks != nil {
		out.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(out.Subtasks, t.Subtasks)
	}
	return out
}

type TaskInput struct {
	Text           string
	Priority       *Priority
	Category       *string
	Important      bool
	DueDate        *time.Time
	Subtasks       []Subtask
	ActiveCategory string
}

type TaskPatch struct {
	Text       *string
	Priority   *Priority
	Category   *string
	Important  *bool
	Completed  *bool
	DueDate    *time.Time
	DueDateSet bool
	Subtasks   []Subtask
	SubtaskSet bool
}

func (p TaskPatch) Empty() bool {
	return p.Text == nil &&
		p.Priority == nil &&
		p.Category == nil &&
		p.Important == nil &&
		p.Completed == nil &&
		!p.DueDateSet &&
		!p.SubtaskSet
}

type User struct {
	ID          string
	DisplayName string
	AvatarURL   string
	Email       string
}

// FirstName is used for the dashboard greeting.
func (u User) FirstName() string {
	fields := strings.Fields(u.DisplayName)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
