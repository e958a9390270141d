package scorerouter

import (
	"log/slog"
	"net/http"

	scorehandlers "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// BasePath is where the score routes are mounted.
const BasePath = "/scores"

// ScoreRouter mounts the score HTTP routes.
type ScoreRouter struct {
	logger *slog.Logger
	router chi.Router
}

// NewScoreRouter creates a new ScoreRouter on top of an existing chi router.
func NewScoreRouter(logger *slog.Logger, router chi.Router) *ScoreRouter {
	return &ScoreRouter{
		logger: logger,
		router: router,
	}
}

// Configure registers the handlers. Every route runs behind the supplied
// middlewares, in order, so the admin gate must be among them.
func (r *ScoreRouter) Configure(handlers scorehandlers.Handlers, middlewares ...func(http.Handler) http.Handler) {
	r.router.Route(BasePath, func(sr chi.Router) {
		for _, mw := range middlewares {
			sr.Use(mw)
		}

		sr.Post("/", handlers.HandleSubmitScore)
		sr.Get("/", handlers.HandleListScores)
		sr.Get("/team/{teamId}", handlers.HandleTeamScores)
		sr.Get("/leaderboard", handlers.HandleLeaderboard)
		sr.Get("/leaderboard/chart", handlers.HandleLeaderboardChart)
		sr.Get("/export", handlers.HandleExport)
		sr.Delete("/{id}", handlers.HandleDeleteScore)
	})

	if r.logger != nil {
		r.logger.Info("Score routes configured", "base_path", BasePath)
	}
}
