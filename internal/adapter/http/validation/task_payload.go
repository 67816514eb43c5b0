package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/mew228/Flowstate/internal/adapter/http/dto"
	"github.com/mew228/Flowstate/internal/core/domain"
)

const dateLayout = "2006-01-02"

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskInput turns a bound request into service input. raw is the
// undecoded body, used to tell an explicit null apart from an absent field.
// Due dates are calendar dates read in loc.
func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage, loc *time.Location) (domain.TaskInput, error) {
	if hasJSONField(raw, "priority") && req.Priority == nil {
		return domain.TaskInput{}, ErrInvalidTaskPayload
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return domain.TaskInput{}, ErrInvalidTaskPayload
	}

	input := domain.TaskInput{
		Text:           text,
		Category:       trimmedOrNil(req.Category),
		ActiveCategory: strings.TrimSpace(req.ActiveCategory),
		Subtasks:       toSubtasks(req.Subtasks),
	}

	if input.Category != nil && domain.IsVirtualCategory(*input.Category) {
		return domain.TaskInput{}, ErrInvalidTaskPayload
	}

	if req.Priority != nil {
		value := domain.Priority(*req.Priority)
		input.Priority = &value
	}

	if req.Important != nil {
		input.Important = *req.Important
	}

	if req.DueDate != nil {
		parsedDueDate, err := time.ParseInLocation(dateLayout, *req.DueDate, loc)
		if err != nil {
			return domain.TaskInput{}, ErrInvalidTaskPayload
		}
		input.DueDate = &parsedDueDate
	}

	return input, nil
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage, loc *time.Location) (domain.TaskPatch, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}

	for _, field := range []string{"text", "priority", "category", "important", "completed"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
	}

	var patch domain.TaskPatch

	if req.Text != nil {
		value := strings.TrimSpace(*req.Text)
		if value == "" {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		patch.Text = &value
	}

	if req.Priority != nil {
		value := domain.Priority(*req.Priority)
		patch.Priority = &value
	}

	if req.Category != nil {
		value := strings.TrimSpace(*req.Category)
		if value == "" || domain.IsVirtualCategory(value) {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		patch.Category = &value
	}

	patch.Important = req.Important
	patch.Completed = req.Completed

	patch.DueDateSet = hasJSONField(raw, "due_date")
	if patch.DueDateSet && !isJSONNull(raw["due_date"]) {
		if req.DueDate == nil {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		parsedDueDate, err := time.ParseInLocation(dateLayout, *req.DueDate, loc)
		if err != nil {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		patch.DueDate = &parsedDueDate
	}

	patch.SubtaskSet = hasJSONField(raw, "subtasks")
	if patch.SubtaskSet {
		patch.Subtasks = toSubtasks(req.Subtasks)
	}

	return patch, nil
}

func toSubtasks(reqs []dto.SubtaskRequest) []domain.Subtask {
	if len(reqs) == 0 {
		return nil
	}
	subtasks := make([]domain.Subtask, 0, len(reqs))
	for _, st := range reqs {
		subtasks = append(subtasks, domain.Subtask{
			ID:        strings.TrimSpace(st.ID),
			Text:      st.Text,
			Completed: st.Completed,
		})
	}
	return subtasks
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "text") ||
		hasJSONField(raw, "priority") ||
		hasJSONField(raw, "category") ||
		hasJSONField(raw, "important") ||
		hasJSONField(raw, "completed") ||
		hasJSONField(raw, "due_date") ||
		hasJSONField(raw, "subtasks")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
