// Package attr provides typed slog attribute constructors used across the service.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

// Error returns an "error" attribute. A nil error produces an empty string value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func TeamID(teamID string) slog.Attr { return slog.String("team_id", teamID) }

func ScoreID(id uuid.UUID) slog.Attr { return slog.String("score_id", id.String()) }

func UserID(id int64) slog.Attr { return slog.Int64("user_id", id) }

// RequestID extracts the chi request id from ctx. It returns an empty
// attribute when none is set so callers can pass it unconditionally.
func RequestID(ctx context.Context) slog.Attr {
	if ctx == nil {
		return slog.Attr{}
	}
	id := middleware.GetReqID(ctx)
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}
