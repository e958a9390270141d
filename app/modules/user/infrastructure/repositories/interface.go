package userdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for user accounts.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get* methods)
//   - ErrNoRowsAffected: UPDATE matched no rows
//   - ErrDuplicateEmail: Create hit the unique email constraint
//   - other errors: infrastructure failures
type Repository interface {
	GetByID(ctx context.Context, db bun.IDB, id int64) (*User, error)
	GetByEmail(ctx context.Context, db bun.IDB, email string) (*User, error)
	// Create inserts the user and fills in the generated id.
	Create(ctx context.Context, db bun.IDB, user *User) error
	UpdateRole(ctx context.Context, db bun.IDB, id int64, role string) error
}
