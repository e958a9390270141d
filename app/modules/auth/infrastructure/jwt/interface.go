package authjwt

import (
	"time"

	authdomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/domain"
)

// Provider defines the interface for JWT token operations.
type Provider interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(userID int64, email string, ttl time.Duration) (string, error)

	// ValidateToken validates a JWT token and returns the claims if valid.
	ValidateToken(tokenString string) (*authdomain.Claims, error)
}
