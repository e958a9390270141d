package scoreservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	scoredomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/domain"
	scoremetrics "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/infrastructure/metrics"
	scoredb "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/attr"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ScoreService"

// ScoreService implements the Service interface.
type ScoreService struct {
	repo    scoredb.Repository
	audit   AuditRecorder
	logger  *slog.Logger
	metrics scoremetrics.ScoreMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewScoreService creates a new ScoreService. audit may be nil.
func NewScoreService(
	repo scoredb.Repository,
	audit AuditRecorder,
	logger *slog.Logger,
	metrics scoremetrics.ScoreMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ScoreService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreService{
		repo:    repo,
		audit:   audit,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

// SubmitScore validates the request, writes the score in one transaction and then
// recomputes the team total in a second one. A failed recomputation is logged and
// the record is returned as written.
func (s *ScoreService) SubmitScore(ctx context.Context, req scoredomain.SubmitScoreRequest) (*SubmitResult, error) {
	result, err := withTelemetry(s, ctx, "SubmitScore", req.TeamID, func(ctx context.Context) (results.OperationResult[*SubmitResult, error], error) {
		if vErr := req.Validate(); vErr != nil {
			return results.FailureResult[*SubmitResult, error](vErr), nil
		}

		res, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*SubmitResult, error], error) {
			return s.submitScoreLogic(ctx, db, req)
		})
		if err != nil || res.IsFailure() {
			return res, err
		}

		submitted := *res.Success
		s.refreshTotal(ctx, &submitted.Score)
		return results.SuccessResult[*SubmitResult, error](submitted), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}

	submitted := *result.Success
	if s.metrics != nil {
		s.metrics.RecordSubmission(ctx, submitted.Created)
	}
	s.recordAudit(ctx, ActionSubmitScore, submitted.Score.ID.String(),
		fmt.Sprintf("team_id=%s review_number=%d points=%g", submitted.Score.TeamID, submitted.Score.ReviewNumber, submitted.Score.Points))
	return submitted, nil
}

func (s *ScoreService) submitScoreLogic(ctx context.Context, db bun.IDB, req scoredomain.SubmitScoreRequest) (results.OperationResult[*SubmitResult, error], error) {
	existing, err := s.repo.GetByTeamAndReview(ctx, db, req.TeamID, int(req.ReviewNumber))
	if err != nil && !errors.Is(err, scoredb.ErrNotFound) {
		return results.OperationResult[*SubmitResult, error]{}, fmt.Errorf("failed to check existing score: %w", err)
	}

	if existing != nil {
		existing.Points = req.Points
		if err := s.repo.UpdatePoints(ctx, db, existing); err != nil {
			return results.OperationResult[*SubmitResult, error]{}, fmt.Errorf("failed to update score: %w", err)
		}
		return results.SuccessResult[*SubmitResult, error](&SubmitResult{Score: toRecord(existing)}), nil
	}

	score := &scoredb.Score{
		ID:           uuid.New(),
		TeamID:       req.TeamID,
		ReviewNumber: int(req.ReviewNumber),
		Points:       req.Points,
	}
	if err := s.repo.Insert(ctx, db, score); err != nil {
		if !errors.Is(err, scoredb.ErrDuplicate) {
			return results.OperationResult[*SubmitResult, error]{}, fmt.Errorf("failed to create score: %w", err)
		}
		// A concurrent submission created the pair first; overwrite it.
		existing, retryErr := s.repo.GetByTeamAndReview(ctx, db, req.TeamID, int(req.ReviewNumber))
		if retryErr != nil {
			return results.OperationResult[*SubmitResult, error]{}, fmt.Errorf("failed to reload score on retry: %w", retryErr)
		}
		existing.Points = req.Points
		if err := s.repo.UpdatePoints(ctx, db, existing); err != nil {
			return results.OperationResult[*SubmitResult, error]{}, fmt.Errorf("failed to update score on retry: %w", err)
		}
		return results.SuccessResult[*SubmitResult, error](&SubmitResult{Score: toRecord(existing)}), nil
	}

	return results.SuccessResult[*SubmitResult, error](&SubmitResult{Score: toRecord(score), Created: true}), nil
}

// GetAllScores lists every stored score.
func (s *ScoreService) GetAllScores(ctx context.Context) ([]scoredomain.ScoreRecord, error) {
	result, err := withTelemetry(s, ctx, "GetAllScores", "all", func(ctx context.Context) (results.OperationResult[[]scoredomain.ScoreRecord, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]scoredomain.ScoreRecord, error], error) {
			rows, err := s.repo.ListAll(ctx, db)
			if err != nil {
				return results.OperationResult[[]scoredomain.ScoreRecord, error]{}, fmt.Errorf("failed to list scores: %w", err)
			}
			return results.SuccessResult[[]scoredomain.ScoreRecord, error](toRecords(rows)), nil
		})
	})
	if err != nil {
		return nil, err
	}
	return *result.Success, nil
}

// GetTeamScores lists the scores of one team.
func (s *ScoreService) GetTeamScores(ctx context.Context, teamID string) ([]scoredomain.ScoreRecord, error) {
	result, err := withTelemetry(s, ctx, "GetTeamScores", teamID, func(ctx context.Context) (results.OperationResult[[]scoredomain.ScoreRecord, error], error) {
		if strings.TrimSpace(teamID) == "" {
			return results.FailureResult[[]scoredomain.ScoreRecord, error](scoredomain.NewValidationError("teamId", "teamId is required")), nil
		}
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]scoredomain.ScoreRecord, error], error) {
			rows, err := s.repo.ListByTeam(ctx, db, teamID)
			if err != nil {
				return results.OperationResult[[]scoredomain.ScoreRecord, error]{}, fmt.Errorf("failed to list team scores: %w", err)
			}
			return results.SuccessResult[[]scoredomain.ScoreRecord, error](toRecords(rows)), nil
		})
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// GetLeaderboard builds the ranked leaderboard from aggregated totals.
func (s *ScoreService) GetLeaderboard(ctx context.Context) ([]scoredomain.LeaderboardEntry, error) {
	result, err := withTelemetry(s, ctx, "GetLeaderboard", "all", func(ctx context.Context) (results.OperationResult[[]scoredomain.LeaderboardEntry, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]scoredomain.LeaderboardEntry, error], error) {
			entries, err := s.leaderboardLogic(ctx, db)
			if err != nil {
				return results.OperationResult[[]scoredomain.LeaderboardEntry, error]{}, err
			}
			return results.SuccessResult[[]scoredomain.LeaderboardEntry, error](entries), nil
		})
	})
	if err != nil {
		return nil, err
	}
	return *result.Success, nil
}

func (s *ScoreService) leaderboardLogic(ctx context.Context, db bun.IDB) ([]scoredomain.LeaderboardEntry, error) {
	rows, err := s.repo.ListTeamTotals(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to list team totals: %w", err)
	}
	totals := make([]scoredomain.TeamTotal, len(rows))
	for i, row := range rows {
		totals[i] = scoredomain.TeamTotal{TeamID: row.TeamID, TotalScore: row.TotalScore}
	}
	return scoredomain.BuildLeaderboard(totals), nil
}

// DeleteScore removes a score and recomputes the owning team's total.
func (s *ScoreService) DeleteScore(ctx context.Context, id string) error {
	result, err := withTelemetry(s, ctx, "DeleteScore", id, func(ctx context.Context) (results.OperationResult[string, error], error) {
		if strings.TrimSpace(id) == "" {
			return results.FailureResult[string, error](scoredomain.NewValidationError("id", "id is required")), nil
		}
		scoreID, err := uuid.Parse(id)
		if err != nil {
			return results.FailureResult[string, error](scoredomain.NewValidationError("id", "id must be a valid UUID")), nil
		}

		res, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[string, error], error) {
			return s.deleteScoreLogic(ctx, db, scoreID)
		})
		if err != nil || res.IsFailure() {
			return res, err
		}

		s.refreshTotal(ctx, &scoredomain.ScoreRecord{TeamID: *res.Success})
		return res, nil
	})
	if err != nil {
		return err
	}
	if result.IsFailure() {
		return *result.Failure
	}

	s.recordAudit(ctx, ActionDeleteScore, id, fmt.Sprintf("team_id=%s", *result.Success))
	return nil
}

// deleteScoreLogic returns the team id of the removed score.
func (s *ScoreService) deleteScoreLogic(ctx context.Context, db bun.IDB, id uuid.UUID) (results.OperationResult[string, error], error) {
	existing, err := s.repo.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, scoredb.ErrNotFound) {
			return results.FailureResult[string, error](ErrScoreNotFound), nil
		}
		return results.OperationResult[string, error]{}, fmt.Errorf("failed to get score: %w", err)
	}

	if err := s.repo.Delete(ctx, db, id); err != nil {
		if errors.Is(err, scoredb.ErrNotFound) {
			return results.FailureResult[string, error](ErrScoreNotFound), nil
		}
		return results.OperationResult[string, error]{}, fmt.Errorf("failed to delete score: %w", err)
	}
	return results.SuccessResult[string, error](existing.TeamID), nil
}

// RecomputeTotal recomputes and stores the total for teamID.
func (s *ScoreService) RecomputeTotal(ctx context.Context, teamID string) (float64, error) {
	result, err := withTelemetry(s, ctx, "RecomputeTotal", teamID, func(ctx context.Context) (results.OperationResult[float64, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[float64, error], error) {
			return s.recomputeTotalLogic(ctx, db, teamID)
		})
	})
	if err != nil {
		return 0, err
	}
	return *result.Success, nil
}

func (s *ScoreService) recomputeTotalLogic(ctx context.Context, db bun.IDB, teamID string) (results.OperationResult[float64, error], error) {
	rows, err := s.repo.ListByTeam(ctx, db, teamID)
	if err != nil {
		return results.OperationResult[float64, error]{}, fmt.Errorf("failed to read team scores: %w", err)
	}

	points := make([]*float64, len(rows))
	for i := range rows {
		points[i] = &rows[i].Points
	}
	total := scoredomain.SumPoints(points)

	if _, err := s.repo.SetTeamTotal(ctx, db, teamID, total); err != nil {
		return results.OperationResult[float64, error]{}, fmt.Errorf("failed to write team total: %w", err)
	}
	return results.SuccessResult[float64, error](total), nil
}

// CountScores returns the number of stored scores.
func (s *ScoreService) CountScores(ctx context.Context) (int, error) {
	return s.repo.Count(ctx, s.dbOrNil())
}

// refreshTotal runs the aggregation for record.TeamID and, on success, stamps
// the fresh total onto record. Failures leave totals stale until the next write.
func (s *ScoreService) refreshTotal(ctx context.Context, record *scoredomain.ScoreRecord) {
	total, err := s.RecomputeTotal(ctx, record.TeamID)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to recompute team total",
			attr.RequestID(ctx),
			attr.TeamID(record.TeamID),
			attr.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordAggregationFailure(ctx, record.TeamID)
		}
		return
	}
	record.TotalScore = &total
}

func (s *ScoreService) recordAudit(ctx context.Context, action, targetID, details string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, action, "scores", targetID, details); err != nil {
		s.logger.WarnContext(ctx, "Failed to record admin action",
			attr.RequestID(ctx),
			attr.String("action", action),
			attr.String("target_id", targetID),
			attr.Error(err),
		)
	}
}

func (s *ScoreService) dbOrNil() bun.IDB {
	if s.db == nil {
		return nil
	}
	return s.db
}

func toRecord(row *scoredb.Score) scoredomain.ScoreRecord {
	return scoredomain.ScoreRecord{
		ID:           row.ID,
		TeamID:       row.TeamID,
		ReviewNumber: scoredomain.ReviewNumber(row.ReviewNumber),
		Points:       row.Points,
		TotalScore:   row.TotalScore,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toRecords(rows []scoredb.Score) []scoredomain.ScoreRecord {
	out := make([]scoredomain.ScoreRecord, len(rows))
	for i := range rows {
		out[i] = toRecord(&rows[i])
	}
	return out
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ScoreService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.RequestID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.RequestID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.RequestID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.RequestID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.RequestID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *ScoreService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}
