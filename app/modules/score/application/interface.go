package scoreservice

import (
	"context"

	scoredomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/domain"
)

// Service defines the score operations exposed to the HTTP layer.
type Service interface {
	// SubmitScore creates or overwrites the score for a (team, review round) pair
	// and refreshes the team's total.
	SubmitScore(ctx context.Context, req scoredomain.SubmitScoreRequest) (*SubmitResult, error)

	// GetAllScores lists every score ordered by team and review round.
	GetAllScores(ctx context.Context) ([]scoredomain.ScoreRecord, error)

	// GetTeamScores lists one team's scores ordered by review round.
	GetTeamScores(ctx context.Context, teamID string) ([]scoredomain.ScoreRecord, error)

	// GetLeaderboard returns one ranked entry per team with an aggregated total.
	GetLeaderboard(ctx context.Context) ([]scoredomain.LeaderboardEntry, error)

	// DeleteScore removes a score by id and refreshes the owning team's total.
	DeleteScore(ctx context.Context, id string) error

	// RecomputeTotal sums a team's points and writes the result to all its rows.
	RecomputeTotal(ctx context.Context, teamID string) (float64, error)

	// ExportScores renders scores and leaderboard as an XLSX workbook.
	ExportScores(ctx context.Context) ([]byte, error)

	// LeaderboardChart renders the leaderboard as a PNG bar chart.
	LeaderboardChart(ctx context.Context) ([]byte, error)

	// CountScores returns the number of stored scores.
	CountScores(ctx context.Context) (int, error)
}

// SubmitResult is the stored record after a submission.
type SubmitResult struct {
	Score   scoredomain.ScoreRecord
	Created bool
}

// AuditRecorder persists admin actions. Implementations read the acting admin from ctx.
type AuditRecorder interface {
	Record(ctx context.Context, action, targetTable, targetID, details string) error
}
