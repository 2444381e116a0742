package repositories

import "errors"

// Error kinds shared across the storage layer and the services built on it.
var (
	// ErrNotFound means the requested user, post, or match does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a conditional write lost a race with a concurrent
	// duplicate (match pair already created, proximity flag already set,
	// codeword already generated). Callers treat it as idempotent success.
	ErrConflict = errors.New("conflict")

	// ErrForbidden means the acting user is not a party to the match.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable means the storage collaborator failed; nothing was
	// committed and the caller may retry.
	ErrUnavailable = errors.New("storage unavailable")
)
