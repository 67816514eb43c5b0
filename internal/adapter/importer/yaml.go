// Package importer loads task lists written in YAML into a user's board.
package importer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/ports"
)

const dueDateLayout = "2006-01-02"

type YAMLSubtask struct {
	Text      string `yaml:"text"`
	Completed bool   `yaml:"completed,omitempty"`
}

type YAMLTask struct {
	Text      string        `yaml:"text"`
	Priority  string        `yaml:"priority,omitempty"`
	Category  string        `yaml:"category,omitempty"`
	Important bool          `yaml:"important,omitempty"`
	DueDate   string        `yaml:"due_date,omitempty"`
	Completed bool          `yaml:"completed,omitempty"`
	Subtasks  []YAMLSubtask `yaml:"subtasks,omitempty"`
}

type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Import creates every task in r for userID and returns how many were created.
// Due dates are calendar dates read in loc.
func Import(ctx context.Context, tasks ports.TaskService, userID string, r io.Reader, loc *time.Location) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read input: %w", err)
	}

	var input YAMLInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks found in YAML")
	}

	count := 0
	for i, yt := range input.Tasks {
		taskInput, err := toInput(yt, loc)
		if err != nil {
			return count, fmt.Errorf("task %d: %w", i+1, err)
		}

		created, err := tasks.Create(ctx, userID, taskInput)
		if err != nil {
			return count, fmt.Errorf("create task %q: %w", yt.Text, err)
		}
		count++

		if yt.Completed {
			if _, err := tasks.Toggle(ctx, userID, created.ID); err != nil {
				return count, fmt.Errorf("complete task %q: %w", yt.Text, err)
			}
		}
	}
	return count, nil
}

func toInput(yt YAMLTask, loc *time.Location) (domain.TaskInput, error) {
	if strings.TrimSpace(yt.Text) == "" {
		return domain.TaskInput{}, fmt.Errorf("task text is required")
	}

	input := domain.TaskInput{
		Text:      yt.Text,
		Important: yt.Important,
	}

	if yt.Priority != "" {
		priority := domain.Priority(strings.ToLower(strings.TrimSpace(yt.Priority)))
		if !priority.Valid() {
			return domain.TaskInput{}, fmt.Errorf("unknown priority %q", yt.Priority)
		}
		input.Priority = &priority
	}

	if yt.Category != "" {
		category := yt.Category
		input.Category = &category
	}

	if yt.DueDate != "" {
		due, err := time.ParseInLocation(dueDateLayout, strings.TrimSpace(yt.DueDate), loc)
		if err != nil {
			return domain.TaskInput{}, fmt.Errorf("invalid due_date %q: %w", yt.DueDate, err)
		}
		input.DueDate = &due
	}

	for _, st := range yt.Subtasks {
		input.Subtasks = append(input.Subtasks, domain.Subtask{Text: st.Text, Completed: st.Completed})
	}

	return input, nil
}
