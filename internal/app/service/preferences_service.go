package service

import (
	"context"

	"github.com/mew228/Flowstate/internal/app/state"
	"github.com/mew228/Flowstate/internal/core/ports"
)

type PreferencesService struct {
	preferences ports.PreferencesRepository
}

func NewPreferencesService(preferences ports.PreferencesRepository) *PreferencesService {
	return &PreferencesService{preferences: preferences}
}

var _ ports.PreferencesService = (*PreferencesService)(nil)

func (s *PreferencesService) Get(ctx context.Context, userID string) (ports.Preferences, error) {
	current, err := state.Load(ctx, s.preferences, userID)
	if err != nil {
		return ports.Preferences{}, err
	}
	return current.Preferences(), nil
}

func (s *PreferencesService) ToggleTheme(ctx context.Context, userID string) (ports.Preferences, error) {
	next, err := state.Update(ctx, s.preferences, userID, func(current state.AppState) (state.AppState, error) {
		return current.ToggleTheme(), nil
	})
	if err != nil {
		return ports.Preferences{}, err
	}
	return next.Preferences(), nil
}
