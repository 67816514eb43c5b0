package mapper

import (
	"time"

	"github.com/mew228/Flowstate/internal/adapter/http/dto"
	"github.com/mew228/Flowstate/internal/core/domain"
)

const dateLayout = "2006-01-02"

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:                task.ID,
		Text:              task.Text,
		Completed:         task.Completed,
		Priority:          string(domain.NormalizePriority(string(task.Priority))),
		Category:          task.Category,
		Important:         task.IsImportant(),
		CreatedAt:         task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         task.UpdatedAt.Format(time.RFC3339),
		Subtasks:          make([]dto.SubtaskItem, 0, len(task.Subtasks)),
		CompletedSubtasks: task.CompletedSubtasks(),
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(dateLayout)
		item.DueDate = &value
	}

	if task.CompletedAt != nil {
		value := task.CompletedAt.Format(time.RFC3339)
		item.CompletedAt = &value
	}

	for _, st := range task.Subtasks {
		item.Subtasks = append(item.Subtasks, dto.SubtaskItem{
			ID:        st.ID,
			Text:      st.Text,
			Completed: st.Completed,
		})
	}

	return item
}
