package ports

import (
	"context"
	"net/url"

	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/query"
)

type TaskRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Task, error)
	Get(ctx context.Context, userID, id string) (domain.Task, error)
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) (domain.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

type TaskService interface {
	View(ctx context.Context, userID string, params query.ViewParams) ([]domain.Task, error)
	Stats(ctx context.Context, userID string) (query.Stats, error)
	Create(ctx context.Context, userID string, input domain.TaskInput) (domain.Task, error)
	Update(ctx context.Context, userID, id string, patch domain.TaskPatch) (domain.Task, error)
	Toggle(ctx context.Context, userID, id string) (domain.Task, error)
	ToggleSubtask(ctx context.Context, userID, id, subtaskID string) (domain.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

type CategoryService interface {
	List(ctx context.Context, userID string) ([]domain.Category, error)
	Add(ctx context.Context, userID, label string) (domain.Category, error)
}

type BillingService interface {
	CheckoutURL() (string, error)
	HandleReturn(ctx context.Context, userID string, query url.Values) (bool, error)
	IsPaid(ctx context.Context, userID string) (bool, error)
}
