package userdb

import (
	"context"

	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	GetByIDFn    func(ctx context.Context, db bun.IDB, id int64) (*User, error)
	GetByEmailFn func(ctx context.Context, db bun.IDB, email string) (*User, error)
	CreateFn     func(ctx context.Context, db bun.IDB, user *User) error
	UpdateRoleFn func(ctx context.Context, db bun.IDB, id int64, role string) error

	Calls []string
}

func (f *FakeRepository) GetByID(ctx context.Context, db bun.IDB, id int64) (*User, error) {
	f.Calls = append(f.Calls, "GetByID")
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, db, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetByEmail(ctx context.Context, db bun.IDB, email string) (*User, error) {
	f.Calls = append(f.Calls, "GetByEmail")
	if f.GetByEmailFn != nil {
		return f.GetByEmailFn(ctx, db, email)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) Create(ctx context.Context, db bun.IDB, user *User) error {
	f.Calls = append(f.Calls, "Create")
	if f.CreateFn != nil {
		return f.CreateFn(ctx, db, user)
	}
	return nil
}

func (f *FakeRepository) UpdateRole(ctx context.Context, db bun.IDB, id int64, role string) error {
	f.Calls = append(f.Calls, "UpdateRole")
	if f.UpdateRoleFn != nil {
		return f.UpdateRoleFn(ctx, db, id, role)
	}
	return nil
}

var _ Repository = (*FakeRepository)(nil)
