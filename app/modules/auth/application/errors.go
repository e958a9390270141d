package authservice

import "errors"

var (
	// ErrMissingToken is returned when no Authorization header is sent.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrInvalidAuthHeader is returned when the header is not "Bearer <token>".
	ErrInvalidAuthHeader = errors.New("invalid authorization header")

	// ErrInvalidToken is returned when the token fails validation.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrUnknownUser is returned when the token names no stored user.
	ErrUnknownUser = errors.New("token user not found")

	// ErrNotAdmin is returned when the token user is not an admin.
	ErrNotAdmin = errors.New("admin role required")

	// ErrInvalidEmail is returned when an admin grant names no email.
	ErrInvalidEmail = errors.New("email is required")

	// ErrGenerateToken is returned when token generation fails.
	ErrGenerateToken = errors.New("failed to generate token")
)
