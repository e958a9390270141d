package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Black-And-White-Club/hackathon-admin/app/modules/adminlog"
	"github.com/Black-And-White-Club/hackathon-admin/app/modules/auth"
	"github.com/Black-And-White-Club/hackathon-admin/app/modules/score"
	"github.com/Black-And-White-Club/hackathon-admin/config"
	"github.com/Black-And-White-Club/hackathon-admin/db/bundb"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ServiceName names the service in logs, traces and the CLI.
const ServiceName = "hackathon-admin"

// Version is set at build time with -ldflags.
var Version = "dev"

// App holds the wired application.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	Router        chi.Router
	Modules       Modules

	handler http.Handler
}

// Modules groups the application modules.
type Modules struct {
	Auth     *auth.Module
	AdminLog *adminlog.Module
	Score    *score.Module
}

// TelemetryConfig maps service configuration onto observability settings.
func TelemetryConfig(cfg *config.Config) observability.Config {
	return observability.Config{
		ServiceName:  ServiceName,
		Version:      Version,
		Environment:  cfg.Observability.Environment,
		LogLevel:     cfg.Observability.LogLevel,
		JSONLogs:     !cfg.IsDevelopment(),
		OTLPEndpoint: cfg.Observability.OTLPEndpoint,
		OTLPInsecure: cfg.Observability.OTLPInsecure,
		SampleRate:   cfg.Observability.SampleRate,
	}
}

// New builds telemetry, connects to the database and wires every module.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	obs, err := observability.New(TelemetryConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	db, err := bundb.Open(ctx, cfg.Postgres, obs.Logger)
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, err
	}

	app, err := Initialize(ctx, cfg, obs, db)
	if err != nil {
		_ = db.Close()
		_ = obs.Shutdown(ctx)
		return nil, err
	}
	return app, nil
}

// Initialize wires the modules onto an already open database.
func Initialize(ctx context.Context, cfg *config.Config, obs observability.Observability, db *bun.DB) (*App, error) {
	router := newRouter(cfg, obs, db)

	authModule := auth.NewModule(ctx, cfg, obs, db)
	gate := authModule.RequireAdmin()

	adminLogModule := adminlog.NewModule(ctx, obs, db, router, gate)

	scoreModule, err := score.NewScoreModule(ctx, obs, db, router, adminLogModule.Service, gate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize score module: %w", err)
	}

	obs.Logger.InfoContext(ctx, "Application initialized")

	return &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		Router:        router,
		Modules: Modules{
			Auth:     authModule,
			AdminLog: adminLogModule,
			Score:    scoreModule,
		},
		handler: otelhttp.NewHandler(router, ServiceName),
	}, nil
}

// Handler returns the instrumented root handler.
func (app *App) Handler() http.Handler {
	return app.handler
}

// Close releases the database pool and flushes telemetry.
func (app *App) Close(ctx context.Context) error {
	var firstErr error
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close database: %w", err)
		}
	}
	if err := app.Observability.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to shut down telemetry: %w", err)
	}
	return firstErr
}
