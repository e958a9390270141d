package scoredb

import "errors"

// Sentinel errors for the repository layer.
// They describe database state; the service decides what they mean to a caller.
var (
	// ErrNotFound indicates the requested score row does not exist.
	ErrNotFound = errors.New("score not found")

	// ErrDuplicate indicates an insert lost to an existing (team_id, review_number) row.
	ErrDuplicate = errors.New("score already exists for team and review")
)
