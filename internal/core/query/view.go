// Package query derives the dashboard view and productivity statistics from a
// snapshot of a user's tasks. Everything here is a pure function of its inputs.
package query

import (
	"sort"
	"strings"

	"github.com/mew228/Flowstate/internal/core/domain"
)

type ViewParams struct {
	Category string
	Search   string
	Status   domain.StatusFilter
}

// ComputeView filters tasks by category, search text and status, then orders
// the result by priority and due date. The input slice is left untouched.
func ComputeView(tasks []domain.Task, params ViewParams) []domain.Task {
	search := strings.ToLower(strings.TrimSpace(params.Search))

	result := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if !matchesCategory(task, params.Category) {
			continue
		}
		if search != "" && !matchesSearch(task, search) {
			continue
		}
		if !matchesStatus(task, params.Status) {
			continue
		}
		result = append(result, task.Clone())
	}

	sort.SliceStable(result, func(i, j int) bool {
		return less(result[i], result[j])
	})

	return result
}

func matchesCategory(task domain.Task, category string) bool {
	switch category {
	case "", domain.CategoryAll:
		return true
	case domain.CategoryImportant:
		return task.IsImportant()
	default:
		return task.Category == category
	}
}

func matchesSearch(task domain.Task, search string) bool {
	return strings.Contains(strings.ToLower(task.Text), search) ||
		strings.Contains(strings.ToLower(task.Category), search)
}

func matchesStatus(task domain.Task, status domain.StatusFilter) bool {
	switch status {
	case domain.StatusActive:
		return !task.Completed
	case domain.StatusCompleted:
		return task.Completed
	default:
		return true
	}
}

// less is priority rank first, then dated before undated, then earlier due date.
func less(a, b domain.Task) bool {
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}

	switch {
	case a.DueDate != nil && b.DueDate != nil:
		return a.DueDate.Before(*b.DueDate)
	case a.DueDate != nil:
		return true
	default:
		return false
	}
}
