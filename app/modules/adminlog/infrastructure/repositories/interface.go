package adminlogdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository persists and reads the admin action log.
type Repository interface {
	Insert(ctx context.Context, db bun.IDB, action *AdminAction) error
	// List returns entries newest first.
	List(ctx context.Context, db bun.IDB, limit, offset int) ([]AdminAction, error)
	Count(ctx context.Context, db bun.IDB) (int, error)
}
