package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mew228/Flowstate/internal/app/state"
	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/ports"
)

// BillingService gates the task board behind a hosted checkout page. The
// checkout itself happens elsewhere; this only redirects and reads the
// return flag.
type BillingService struct {
	preferences ports.PreferencesRepository
	paymentLink string
	required    bool
}

func NewBillingService(preferences ports.PreferencesRepository, paymentLink string, required bool) *BillingService {
	return &BillingService{
		preferences: preferences,
		paymentLink: paymentLink,
		required:    required,
	}
}

var _ ports.BillingService = (*BillingService)(nil)

func (s *BillingService) CheckoutURL() (string, error) {
	if s.paymentLink == "" {
		return "", domain.ErrBillingNotConfigured
	}
	return s.paymentLink, nil
}

func (s *BillingService) HandleReturn(ctx context.Context, userID string, query url.Values) (bool, error) {
	if query.Get("success") != "true" {
		return false, nil
	}

	_, err := state.Update(ctx, s.preferences, userID, func(current state.AppState) (state.AppState, error) {
		return current.MarkPaid(), nil
	})
	if err != nil {
		return false, fmt.Errorf("update preferences: %w", err)
	}
	return true, nil
}

func (s *BillingService) IsPaid(ctx context.Context, userID string) (bool, error) {
	if !s.required {
		return true, nil
	}
	current, err := state.Load(ctx, s.preferences, userID)
	if err != nil {
		return false, fmt.Errorf("load preferences: %w", err)
	}
	return current.HasPaid, nil
}
