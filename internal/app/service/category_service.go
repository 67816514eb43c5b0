package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mew228/Flowstate/internal/app/state"
	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/ports"
)

type CategoryService struct {
	preferences ports.PreferencesRepository
}

func NewCategoryService(preferences ports.PreferencesRepository) *CategoryService {
	return &CategoryService{preferences: preferences}
}

var _ ports.CategoryService = (*CategoryService)(nil)

// List returns the defaults followed by the user's custom categories.
func (s *CategoryService) List(ctx context.Context, userID string) ([]domain.Category, error) {
	current, err := state.Load(ctx, s.preferences, userID)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return domain.AllCategories(current.CustomCategories), nil
}

func (s *CategoryService) Add(ctx context.Context, userID, label string) (domain.Category, error) {
	var added domain.Category
	_, err := state.Update(ctx, s.preferences, userID, func(current state.AppState) (state.AppState, error) {
		next, category, err := current.AddCategory(label)
		added = category
		return next, err
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("update preferences: %w", err)
	}

	zap.L().Info("custom category added", zap.String("user_id", userID), zap.String("category_id", added.ID))
	return added, nil
}
