package scoredb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for score persistence.
// Every method accepts an optional bun.IDB so callers can run it inside a transaction.
type Repository interface {
	// GetByID retrieves a score row by id.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Score, error)

	// GetByTeamAndReview retrieves the row for a (team, review round) pair.
	GetByTeamAndReview(ctx context.Context, db bun.IDB, teamID string, reviewNumber int) (*Score, error)

	// Insert creates a row. It returns ErrDuplicate when the pair already exists.
	Insert(ctx context.Context, db bun.IDB, score *Score) error

	// UpdatePoints overwrites points and updated_at for score.ID.
	UpdatePoints(ctx context.Context, db bun.IDB, score *Score) error

	// Delete removes a row by id.
	Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error

	// ListAll returns every row ordered by team and review round.
	ListAll(ctx context.Context, db bun.IDB) ([]Score, error)

	// ListByTeam returns a team's rows ordered by review round.
	ListByTeam(ctx context.Context, db bun.IDB, teamID string) ([]Score, error)

	// SetTeamTotal writes total into every row of the team and returns the row count.
	SetTeamTotal(ctx context.Context, db bun.IDB, teamID string, total float64) (int64, error)

	// Count returns the number of stored rows.
	Count(ctx context.Context, db bun.IDB) (int, error)

	// ListTeamTotals returns (team_id, total_score) for rows with a non-null total,
	// highest first. A team appears once per score row.
	ListTeamTotals(ctx context.Context, db bun.IDB) ([]TeamTotal, error)
}
