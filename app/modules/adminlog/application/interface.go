package adminlogservice

import (
	"context"
	"time"
)

// Service records and lists admin actions.
type Service interface {
	// Record stores one action attributed to the principal in ctx, if any.
	Record(ctx context.Context, action, targetTable, targetID, details string) error

	// ListActions returns the newest entries. limit and offset are clamped to the
	// page bounds rather than rejected.
	ListActions(ctx context.Context, limit, offset int) (*ActionPage, error)
}

// ActionRecord is the API view of an admin action.
type ActionRecord struct {
	ID          int64     `json:"id"`
	AdminID     *int64    `json:"admin_id"`
	Action      string    `json:"action"`
	TargetTable string    `json:"target_table"`
	TargetID    string    `json:"target_id"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActionPage is one page of the log plus the total number of entries.
type ActionPage struct {
	Actions []ActionRecord
	Total   int
	Limit   int
	Offset  int
}
