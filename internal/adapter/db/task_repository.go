package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/ports"
)

const tasksTable = "tasks"

var taskColumns = []string{
	"id",
	"user_id",
	"text",
	"completed",
	"completed_at",
	"priority",
	"category",
	"important",
	"due_date",
	"subtasks",
	"created_at",
	"updated_at",
}

type TaskRepository struct {
	db *sqlx.DB
	sq squirrel.StatementBuilderType
}

type taskRow struct {
	ID          string       `db:"id"`
	UserID      string       `db:"user_id"`
	Text        string       `db:"text"`
	Completed   bool         `db:"completed"`
	CompletedAt sql.NullTime `db:"completed_at"`
	Priority    string       `db:"priority"`
	Category    string       `db:"category"`
	Important   bool         `db:"important"`
	DueDate     sql.NullTime `db:"due_date"`
	Subtasks    string       `db:"subtasks"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	query, args, err := r.sq.Select(taskColumns...).
		From(tasksTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, id string) (domain.Task, error) {
	query, args, err := r.sq.Select(taskColumns...).
		From(tasksTable).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return domain.Task{}, err
	}

	var row taskRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	row, err := mapDomainTaskToRow(task)
	if err != nil {
		return domain.Task{}, err
	}

	query, args, err := r.sq.Insert(tasksTable).
		Columns(taskColumns...).
		Values(
			row.ID,
			row.UserID,
			row.Text,
			row.Completed,
			row.CompletedAt,
			row.Priority,
			row.Category,
			row.Important,
			row.DueDate,
			row.Subtasks,
			row.CreatedAt,
			row.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return domain.Task{}, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return domain.Task{}, err
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = time.Now()
	}

	row, err := mapDomainTaskToRow(task)
	if err != nil {
		return domain.Task{}, err
	}

	query, args, err := r.sq.Update(tasksTable).
		SetMap(map[string]any{
			"text":         row.Text,
			"completed":    row.Completed,
			"completed_at": row.CompletedAt,
			"priority":     row.Priority,
			"category":     row.Category,
			"important":    row.Important,
			"due_date":     row.DueDate,
			"subtasks":     row.Subtasks,
			"updated_at":   row.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": row.ID, "user_id": row.UserID}).
		ToSql()
	if err != nil {
		return domain.Task{}, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Task{}, err
	}
	if err := requireAffected(result); err != nil {
		return domain.Task{}, err
	}

	return r.Get(ctx, task.UserID, task.ID)
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	query, args, err := r.sq.Delete(tasksTable).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func mapDomainTaskToRow(task domain.Task) (taskRow, error) {
	subtasks := task.Subtasks
	if subtasks == nil {
		subtasks = []domain.Subtask{}
	}
	encoded, err := json.Marshal(subtasks)
	if err != nil {
		return taskRow{}, fmt.Errorf("encode subtasks: %w", err)
	}

	row := taskRow{
		ID:        task.ID,
		UserID:    task.UserID,
		Text:      task.Text,
		Completed: task.Completed,
		Priority:  string(domain.NormalizePriority(string(task.Priority))),
		Category:  task.Category,
		Important: task.Important,
		Subtasks:  string(encoded),
		CreatedAt: task.CreatedAt.UTC(),
		UpdatedAt: task.UpdatedAt.UTC(),
	}

	if task.CompletedAt != nil {
		row.CompletedAt = sql.NullTime{Time: task.CompletedAt.UTC(), Valid: true}
	}
	if task.DueDate != nil {
		row.DueDate = sql.NullTime{Time: domain.CalendarDay(*task.DueDate), Valid: true}
	}

	return row, nil
}

// mapTaskRowToDomainTask tolerates legacy rows: unknown priorities read as
// medium and unreadable subtasks as none.
func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		UserID:    row.UserID,
		Text:      row.Text,
		Completed: row.Completed,
		Priority:  domain.NormalizePriority(row.Priority),
		Category:  row.Category,
		Important: row.Important,
		Subtasks:  []domain.Subtask{},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if task.Category == "" {
		task.Category = domain.CategoryPersonal
	}

	if row.CompletedAt.Valid {
		value := row.CompletedAt.Time
		task.CompletedAt = &value
	}

	if row.DueDate.Valid {
		value := domain.CalendarDay(row.DueDate.Time)
		task.DueDate = &value
	}

	if row.Subtasks != "" {
		if err := json.Unmarshal([]byte(row.Subtasks), &task.Subtasks); err != nil {
			zap.L().Warn("unreadable subtasks", zap.String("task_id", row.ID), zap.Error(err))
			task.Subtasks = []domain.Subtask{}
		}
		if task.Subtasks == nil {
			task.Subtasks = []domain.Subtask{}
		}
	}

	return task
}
