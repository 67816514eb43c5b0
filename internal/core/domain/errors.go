package domain

import "errors"

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrSubtaskNotFound      = errors.New("subtask not found")
	ErrInvalidTask          = errors.New("invalid task")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrCategoryExists       = errors.New("category already exists")
	ErrPaymentRequired      = errors.New("payment required")
	ErrBillingNotConfigured = errors.New("billing not configured")
)
