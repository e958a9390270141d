package userdb

import (
	"time"

	"github.com/uptrace/bun"
)

// User is an account that may sign in to the admin dashboard.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Email         string    `bun:"email,unique,notnull" json:"email"`
	Username      *string   `bun:"username,nullzero" json:"username,omitempty"`
	Role          string    `bun:"role,notnull,default:'user'" json:"role"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
