package adminlogservice

import (
	"context"
	"fmt"
	"log/slog"

	adminlogdb "github.com/Black-And-White-Club/hackathon-admin/app/modules/adminlog/infrastructure/repositories"
	authdomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/domain"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/attr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// service implements the Service interface.
type service struct {
	repo   adminlogdb.Repository
	logger *slog.Logger
	tracer trace.Tracer
}

// NewService creates a new admin action log service.
func NewService(repo adminlogdb.Repository, logger *slog.Logger, tracer trace.Tracer) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:   repo,
		logger: logger,
		tracer: tracer,
	}
}

func (s *service) Record(ctx context.Context, action, targetTable, targetID, details string) error {
	ctx, span := s.tracer.Start(ctx, "AdminLogService.Record", trace.WithAttributes(
		attribute.String("action", action),
		attribute.String("target_id", targetID),
	))
	defer span.End()

	entry := &adminlogdb.AdminAction{
		Action:      action,
		TargetTable: targetTable,
		TargetID:    targetID,
		Details:     details,
	}
	if p, ok := authdomain.PrincipalFromContext(ctx); ok {
		id := p.UserID
		entry.AdminID = &id
	}

	if err := s.repo.Insert(ctx, nil, entry); err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.DebugContext(ctx, "Admin action recorded",
		attr.String("action", action),
		attr.String("target_id", targetID),
	)
	return nil
}

func (s *service) ListActions(ctx context.Context, limit, offset int) (*ActionPage, error) {
	ctx, span := s.tracer.Start(ctx, "AdminLogService.ListActions")
	defer span.End()

	limit, offset = clampPage(limit, offset)

	rows, err := s.repo.List(ctx, nil, limit, offset)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	total, err := s.repo.Count(ctx, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count admin actions: %w", err)
	}

	actions := make([]ActionRecord, 0, len(rows))
	for _, row := range rows {
		actions = append(actions, ActionRecord{
			ID:          row.ID,
			AdminID:     row.AdminID,
			Action:      row.Action,
			TargetTable: row.TargetTable,
			TargetID:    row.TargetID,
			Details:     row.Details,
			CreatedAt:   row.CreatedAt,
		})
	}

	return &ActionPage{Actions: actions, Total: total, Limit: limit, Offset: offset}, nil
}

func clampPage(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
