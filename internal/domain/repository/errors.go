package repository

import "errors"

// Storage-agnostic failure signals. Concrete repositories translate their
// driver's native errors into these so the application layer never inspects
// driver error codes.
var (
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail reports a unique-constraint conflict on users.email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateName reports a per-user unique-name conflict (categories).
	ErrDuplicateName = errors.New("name already in use")
)
