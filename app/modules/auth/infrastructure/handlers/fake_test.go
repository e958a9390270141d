package authhandlers

import (
	"context"
	"time"

	authservice "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/domain"
)

// FakeService is a programmable fake for authservice.Service.
type FakeService struct {
	AuthorizeFunc  func(ctx context.Context, authHeader string) (authdomain.Principal, error)
	GrantAdminFunc func(ctx context.Context, email string, ttl time.Duration) (*authservice.AdminGrant, error)

	headers []string
}

func (f *FakeService) Authorize(ctx context.Context, authHeader string) (authdomain.Principal, error) {
	f.headers = append(f.headers, authHeader)
	if f.AuthorizeFunc != nil {
		return f.AuthorizeFunc(ctx, authHeader)
	}
	return authdomain.Principal{UserID: 1, Email: "admin@example.com", Role: authdomain.RoleAdmin}, nil
}

func (f *FakeService) GrantAdmin(ctx context.Context, email string, ttl time.Duration) (*authservice.AdminGrant, error) {
	if f.GrantAdminFunc != nil {
		return f.GrantAdminFunc(ctx, email, ttl)
	}
	return &authservice.AdminGrant{}, nil
}

var _ authservice.Service = (*FakeService)(nil)
