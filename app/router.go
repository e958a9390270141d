package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	authhandlers "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/hackathon-admin/config"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/attr"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/httpjson"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// healthTimeout bounds the database ping behind /healthz.
const healthTimeout = 2 * time.Second

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// newRouter builds the root router with the shared middleware stack and the
// public endpoints. Module routes are mounted on it afterwards.
func newRouter(cfg *config.Config, obs observability.Observability, db Pinger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(obs.Logger))
	r.Use(middleware.Recoverer)
	r.Use(authhandlers.CORSMiddleware(cfg.HTTP.AllowedOrigins))

	r.Get("/healthz", healthHandler(db, obs.Logger))
	if obs.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{Registry: obs.Registry}))
	}

	return r
}

// requestLogger logs the start and completion of every request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			logger.DebugContext(ctx, "request started",
				attr.String("method", r.Method),
				attr.String("path", r.URL.Path),
				attr.String("remote", r.RemoteAddr),
				attr.RequestID(ctx),
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.InfoContext(ctx, "request completed",
				attr.String("method", r.Method),
				attr.String("path", r.URL.Path),
				attr.Int("status", status),
				attr.Int64("duration_ms", time.Since(start).Milliseconds()),
				attr.RequestID(ctx),
			)
		})
	}
}

func healthHandler(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.WarnContext(ctx, "Health check failed", attr.Error(err))
			httpjson.Fail(w, http.StatusServiceUnavailable, "database unavailable", err.Error())
			return
		}
		httpjson.OK(w, "ok")
	}
}
