package adminlogdb

import (
	"time"

	"github.com/uptrace/bun"
)

// AdminAction is one audited mutation.
type AdminAction struct {
	bun.BaseModel `bun:"table:admin_action_log,alias:aal"`

	ID          int64     `bun:"id,pk,autoincrement"`
	AdminID     *int64    `bun:"admin_id"`
	Action      string    `bun:"action,notnull"`
	TargetTable string    `bun:"target_table,notnull"`
	TargetID    string    `bun:"target_id,notnull"`
	Details     string    `bun:"details,notnull"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
