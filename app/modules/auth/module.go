package auth

import (
	"context"
	"log/slog"
	"net/http"

	authservice "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/hackathon-admin/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-admin/config"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/observability"
	"github.com/uptrace/bun"
)

// Module represents the auth module.
type Module struct {
	service  authservice.Service
	handlers authhandlers.Handlers
	logger   *slog.Logger
}

// NewModule creates a new auth module.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
) *Module {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing auth module")

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer)
	userRepo := userdb.NewRepository(db)

	service := authservice.NewService(jwtProvider, userRepo, logger, tracer)
	handlers := authhandlers.NewAuthHandlers(service, logger, tracer)

	return &Module{
		service:  service,
		handlers: handlers,
		logger:   logger,
	}
}

// RequireAdmin is the admin gate for protected routes.
func (m *Module) RequireAdmin() func(next http.Handler) http.Handler {
	return m.handlers.RequireAdmin
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}
