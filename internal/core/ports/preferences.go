package ports

import (
	"context"

	"github.com/mew228/Flowstate/internal/core/domain"
)

type Preferences struct {
	Theme            string            `yaml:"theme"`
	CustomCategories []domain.Category `yaml:"categories"`
	HasPaid          bool              `yaml:"has_paid"`
}

type PreferencesRepository interface {
	Load(ctx context.Context, userID string) (Preferences, error)
	Save(ctx context.Context, userID string, prefs Preferences) error
	// Update runs fn on the stored preferences and saves its result as one
	// step for userID. Nothing is saved when fn returns an error.
	Update(ctx context.Context, userID string, fn func(Preferences) (Preferences, error)) (Preferences, error)
}

type PreferencesService interface {
	Get(ctx context.Context, userID string) (Preferences, error)
	ToggleTheme(ctx context.Context, userID string) (Preferences, error)
}
