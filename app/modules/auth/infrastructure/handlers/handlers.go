package authhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	authservice "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/domain"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/attr"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/httpjson"
	"go.opentelemetry.io/otel/trace"
)

// Handlers defines the HTTP surface of the auth module.
type Handlers interface {
	// RequireAdmin rejects requests that do not carry an admin bearer token and
	// stores the resolved principal in the request context otherwise.
	RequireAdmin(next http.Handler) http.Handler
}

// AuthHandlers implements the Handlers interface.
type AuthHandlers struct {
	service authservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(
	service authservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *AuthHandlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.RequireAdmin")
		principal, err := h.service.Authorize(ctx, r.Header.Get("Authorization"))
		span.End()
		if err != nil {
			status, message := gateError(err)
			if status == http.StatusInternalServerError {
				h.logger.ErrorContext(ctx, "Admin authorization failed",
					attr.RequestID(ctx),
					attr.Error(err),
				)
			}
			httpjson.Fail(w, status, message, "")
			return
		}

		next.ServeHTTP(w, r.WithContext(authdomain.WithPrincipal(r.Context(), principal)))
	})
}

func gateError(err error) (int, string) {
	switch {
	case errors.Is(err, authservice.ErrMissingToken):
		return http.StatusUnauthorized, "No token provided"
	case errors.Is(err, authservice.ErrInvalidAuthHeader):
		return http.StatusUnauthorized, "Invalid auth header"
	case errors.Is(err, authservice.ErrUnknownUser):
		return http.StatusUnauthorized, "Invalid token user"
	case errors.Is(err, authservice.ErrNotAdmin):
		return http.StatusForbidden, "Admins only"
	case errors.Is(err, authservice.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
