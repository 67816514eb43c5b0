// Package state holds the per-user application state and the transitions
// that change it. Transitions are pure; Update persists one atomically.
package state

import (
	"context"

	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/ports"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type AppState struct {
	Theme            string
	CustomCategories []domain.Category
	HasPaid          bool
}

// Initial builds the state from persisted preferences.
func Initial(prefs ports.Preferences) AppState {
	theme := prefs.Theme
	if theme != ThemeLight {
		theme = ThemeDark
	}
	custom := make([]domain.Category, len(prefs.CustomCategories))
	copy(custom, prefs.CustomCategories)

	return AppState{
		Theme:            theme,
		CustomCategories: custom,
		HasPaid:          prefs.HasPaid,
	}
}

// Load reads persisted preferences for userID and returns the initial state.
func Load(ctx context.Context, repo ports.PreferencesRepository, userID string) (AppState, error) {
	prefs, err := repo.Load(ctx, userID)
	if err != nil {
		return AppState{}, err
	}
	return Initial(prefs), nil
}

// Update applies transition to the latest stored state and persists the
// result in the same step. A transition error leaves the store untouched.
func Update(ctx context.Context, repo ports.PreferencesRepository, userID string, transition func(AppState) (AppState, error)) (AppState, error) {
	var next AppState
	_, err := repo.Update(ctx, userID, func(prefs ports.Preferences) (ports.Preferences, error) {
		s, err := transition(Initial(prefs))
		if err != nil {
			return prefs, err
		}
		next = s
		return s.Preferences(), nil
	})
	if err != nil {
		return AppState{}, err
	}
	return next, nil
}

func (s AppState) Preferences() ports.Preferences {
	return ports.Preferences{
		Theme:            s.Theme,
		CustomCategories: s.CustomCategories,
		HasPaid:          s.HasPaid,
	}
}

func (s AppState) ToggleTheme() AppState {
	if s.Theme == ThemeDark {
		s.Theme = ThemeLight
	} else {
		s.Theme = ThemeDark
	}
	return s
}

func (s AppState) AddCategory(label string) (AppState, domain.Category, error) {
	custom, added, err := domain.AddCustomCategory(s.CustomCategories, label)
	if err != nil {
		return s, domain.Category{}, err
	}
	s.CustomCategories = custom
	return s, added, nil
}

func (s AppState) MarkPaid() AppState {
	s.HasPaid = true
	return s
}

// DefaultTaskCategory is the category preselected for a new task created
// while active is the selected filter.
func DefaultTaskCategory(active string) string {
	if active == "" || domain.IsVirtualCategory(active) {
		return domain.CategoryPersonal
	}
	return active
}
