package dto

type SubtaskItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type TaskItem struct {
	ID                string        `json:"id"`
	Text              string        `json:"text"`
	Completed         bool          `json:"completed"`
	Priority          string        `json:"priority"`
	Category          string        `json:"category"`
	Important         bool          `json:"important"`
	DueDate           *string       `json:"due_date,omitempty"`
	CompletedAt       *string       `json:"completed_at,omitempty"`
	CreatedAt         string        `json:"created_at"`
	UpdatedAt         string        `json:"updated_at"`
	Subtasks          []SubtaskItem `json:"subtasks"`
	CompletedSubtasks int           `json:"completed_subtasks"`
}

type SubtaskRequest struct {
	ID        string `json:"id" binding:"omitempty,max=64"`
	Text      string `json:"text" binding:"max=255"`
	Completed bool   `json:"completed"`
}

type CreateTaskRequest struct {
	Text           string           `json:"text" binding:"required,max=500"`
	Priority       *string          `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category       *string          `json:"category" binding:"omitempty,max=64"`
	Important      *bool            `json:"important"`
	DueDate        *string          `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Subtasks       []SubtaskRequest `json:"subtasks" binding:"omitempty,dive"`
	ActiveCategory string           `json:"active_category" binding:"omitempty,max=64"`
}

type UpdateTaskRequest struct {
	Text      *string          `json:"text" binding:"omitempty,max=500"`
	Priority  *string          `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category  *string          `json:"category" binding:"omitempty,max=64"`
	Important *bool            `json:"important"`
	Completed *bool            `json:"completed"`
	DueDate   *string          `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Subtasks  []SubtaskRequest `json:"subtasks" binding:"omitempty,dive"`
}
