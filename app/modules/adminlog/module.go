package adminlog

import (
	"context"
	"net/http"

	adminlogservice "github.com/Black-And-White-Club/hackathon-admin/app/modules/adminlog/application"
	adminloghandlers "github.com/Black-And-White-Club/hackathon-admin/app/modules/adminlog/infrastructure/handlers"
	adminlogdb "github.com/Black-And-White-Club/hackathon-admin/app/modules/adminlog/infrastructure/repositories"
	adminlogrouter "github.com/Black-And-White-Club/hackathon-admin/app/modules/adminlog/infrastructure/router"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the admin action log module.
type Module struct {
	Service adminlogservice.Service
}

// NewModule creates the module and mounts its routes on httpRouter behind gate.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
	gate func(http.Handler) http.Handler,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing admin log module")

	repo := adminlogdb.NewRepository(db)
	service := adminlogservice.NewService(repo, logger, obs.Tracer)

	if httpRouter != nil {
		adminlogrouter.Configure(httpRouter, adminloghandlers.NewAdminLogHandlers(service, logger), gate)
	}

	return &Module{Service: service}
}
