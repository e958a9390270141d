package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/hackathon-admin/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/attr"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTokenTTL matches the lifetime of tokens issued by the dashboard login.
const DefaultTokenTTL = 24 * time.Hour

// service implements the Service interface.
type service struct {
	repo        userdb.Repository
	jwtProvider authjwt.Provider
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewService creates a new auth service.
func NewService(
	jwtProvider authjwt.Provider,
	repo userdb.Repository,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:        repo,
		jwtProvider: jwtProvider,
		logger:      logger,
		tracer:      tracer,
	}
}

// Authorize checks the header shape, validates the token and then loads the user
// from storage so role changes take effect without reissuing tokens.
func (s *service) Authorize(ctx context.Context, authHeader string) (authdomain.Principal, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Authorize")
	defer span.End()

	if authHeader == "" {
		return authdomain.Principal{}, ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return authdomain.Principal{}, ErrInvalidAuthHeader
	}

	claims, err := s.jwtProvider.ValidateToken(parts[1])
	if err != nil {
		s.logger.WarnContext(ctx, "Token validation failed", attr.Error(err))
		if errors.Is(err, authjwt.ErrMissingSubject) {
			return authdomain.Principal{}, fmt.Errorf("%w: %v", ErrUnknownUser, err)
		}
		return authdomain.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := s.repo.GetByID(ctx, nil, claims.UserID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			s.logger.WarnContext(ctx, "Token user not found", attr.UserID(claims.UserID))
			return authdomain.Principal{}, ErrUnknownUser
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "Failed to load token user",
			attr.UserID(claims.UserID),
			attr.Error(err),
		)
		return authdomain.Principal{}, fmt.Errorf("failed to load token user: %w", err)
	}

	role := authdomain.Role(user.Role)
	if role != authdomain.RoleAdmin {
		s.logger.WarnContext(ctx, "Non-admin denied",
			attr.UserID(user.ID),
			attr.String("role", user.Role),
		)
		return authdomain.Principal{}, ErrNotAdmin
	}

	return authdomain.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   role,
	}, nil
}

func (s *service) GrantAdmin(ctx context.Context, email string, ttl time.Duration) (*AdminGrant, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.GrantAdmin")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	created, promoted := false, false
	user, err := s.repo.GetByEmail(ctx, nil, email)
	if errors.Is(err, userdb.ErrNotFound) {
		candidate := &userdb.User{Email: email, Role: authdomain.RoleAdmin.String()}
		err = s.repo.Create(ctx, nil, candidate)
		switch {
		case err == nil:
			user, created = candidate, true
		case errors.Is(err, userdb.ErrDuplicateEmail):
			// Created concurrently; promote the stored row instead.
			user, err = s.repo.GetByEmail(ctx, nil, email)
		}
	}
	switch {
	case err != nil:
		return nil, err
	case user.Role != authdomain.RoleAdmin.String():
		if err := s.repo.UpdateRole(ctx, nil, user.ID, authdomain.RoleAdmin.String()); err != nil {
			return nil, fmt.Errorf("failed to promote user: %w", err)
		}
		user.Role = authdomain.RoleAdmin.String()
		promoted = true
	}

	token, err := s.jwtProvider.GenerateToken(user.ID, user.Email, ttl)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token", attr.UserID(user.ID), attr.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerateToken, err)
	}

	s.logger.InfoContext(ctx, "Admin access granted",
		attr.UserID(user.ID),
		attr.Bool("created", created),
		attr.Bool("promoted", promoted),
	)

	return &AdminGrant{
		Principal: authdomain.Principal{UserID: user.ID, Email: user.Email, Role: authdomain.RoleAdmin},
		Created:   created,
		Promoted:  promoted,
		Token:     token,
	}, nil
}
