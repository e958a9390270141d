package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/domain"
)

// Service defines the admin authorization service interface.
type Service interface {
	// Authorize resolves an Authorization header to an admin principal. The
	// returned error is one of the sentinel errors in this package, or a store
	// failure.
	Authorize(ctx context.Context, authHeader string) (authdomain.Principal, error)

	// GrantAdmin creates the user if needed, gives it the admin role and mints an
	// access token for it.
	GrantAdmin(ctx context.Context, email string, ttl time.Duration) (*AdminGrant, error)
}

// AdminGrant is the outcome of GrantAdmin.
type AdminGrant struct {
	Principal authdomain.Principal
	// Created is set when the user row was inserted by this call.
	Created bool
	// Promoted is set when an existing user had its role changed to admin.
	Promoted bool
	Token    string
}
