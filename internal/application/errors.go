package application

import "errors"

var (
	// ErrEmailTaken is the domain translation of the repository's
	// unique-violation signal. Terminal and user-correctable; never retried.
	ErrEmailTaken = errors.New("email already in use")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	ErrCategoryNameTaken   = errors.New("category name already in use")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrGoalNotFound        = errors.New("goal not found")
)
