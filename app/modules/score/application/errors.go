package scoreservice

import "errors"

// Domain errors for the score service. Handlers map these to client errors.
var (
	// ErrScoreNotFound indicates the addressed score does not exist.
	ErrScoreNotFound = errors.New("score not found")
)

// Audit action names written to the admin action log.
const (
	ActionSubmitScore = "SUBMIT_SCORE"
	ActionDeleteScore = "DELETE_SCORE"
)
