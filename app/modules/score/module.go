package score

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	scoreservice "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/application"
	scorehandlers "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/infrastructure/handlers"
	scoremetrics "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/infrastructure/metrics"
	scoredb "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/infrastructure/repositories"
	scorerouter "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/infrastructure/router"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// countTimeout bounds the score count read at metrics scrape time.
const countTimeout = 2 * time.Second

// Module represents the score module.
type Module struct {
	ScoreService scoreservice.Service
	ScoreRouter  *scorerouter.ScoreRouter
	logger       *slog.Logger
}

// NewScoreModule creates and initializes a new score module. audit may be nil.
func NewScoreModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
	audit scoreservice.AuditRecorder,
	gate func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "score.NewScoreModule initializing")

	// 1. Initialize Repository
	repo := scoredb.NewRepository(db)

	// 2. Initialize Metrics
	var metrics scoremetrics.ScoreMetrics = scoremetrics.NewNoop()
	if obs.Registry != nil {
		m, err := scoremetrics.NewPrometheus(obs.Registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register score metrics: %w", err)
		}
		metrics = m
	}

	// 3. Initialize Service
	service := scoreservice.NewScoreService(repo, audit, logger, metrics, tracer, db)

	if obs.Registry != nil {
		err := scoremetrics.RegisterScoreCountGauge(obs.Registry, func() (int, error) {
			ctx, cancel := context.WithTimeout(context.Background(), countTimeout)
			defer cancel()
			return service.CountScores(ctx)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to register score count gauge: %w", err)
		}
	}

	// 4. Initialize Handlers
	handlers := scorehandlers.NewScoreHandlers(service, logger)

	// 5. Configure the router with handlers
	router := scorerouter.NewScoreRouter(logger, httpRouter)
	router.Configure(handlers, gate)

	return &Module{
		ScoreService: service,
		ScoreRouter:  router,
		logger:       logger,
	}, nil
}
