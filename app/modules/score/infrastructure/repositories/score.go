package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new score repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Score, error) {
	db = r.resolveDB(db)
	score := new(Score)
	err := db.NewSelect().
		Model(score).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get score by id: %w", err)
	}
	return score, nil
}

func (r *Impl) GetByTeamAndReview(ctx context.Context, db bun.IDB, teamID string, reviewNumber int) (*Score, error) {
	db = r.resolveDB(db)
	score := new(Score)
	err := db.NewSelect().
		Model(score).
		Where("team_id = ?", teamID).
		Where("review_number = ?", reviewNumber).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get score by team and review: %w", err)
	}
	return score, nil
}

// Insert writes a new row. A concurrent insert of the same pair is absorbed by
// ON CONFLICT DO NOTHING so the surrounding transaction stays usable.
func (r *Impl) Insert(ctx context.Context, db bun.IDB, score *Score) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if score.CreatedAt.IsZero() {
		score.CreatedAt = now
	}
	score.UpdatedAt = now

	result, err := db.NewInsert().
		Model(score).
		On("CONFLICT (team_id, review_number) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *Impl) UpdatePoints(ctx context.Context, db bun.IDB, score *Score) error {
	db = r.resolveDB(db)
	score.UpdatedAt = time.Now().UTC()
	result, err := db.NewUpdate().
		Model((*Score)(nil)).
		Set("points = ?", score.Points).
		Set("updated_at = ?", score.UpdatedAt).
		Where("id = ?", score.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update score points: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Score)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) ListAll(ctx context.Context, db bun.IDB) ([]Score, error) {
	db = r.resolveDB(db)
	var scores []Score
	err := db.NewSelect().
		Model(&scores).
		Order("team_id ASC", "review_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return scores, nil
}

func (r *Impl) ListByTeam(ctx context.Context, db bun.IDB, teamID string) ([]Score, error) {
	db = r.resolveDB(db)
	var scores []Score
	err := db.NewSelect().
		Model(&scores).
		Where("team_id = ?", teamID).
		Order("review_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores for team: %w", err)
	}
	return scores, nil
}

func (r *Impl) SetTeamTotal(ctx context.Context, db bun.IDB, teamID string, total float64) (int64, error) {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Score)(nil)).
		Set("total_score = ?", total).
		Where("team_id = ?", teamID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to set team total: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *Impl) Count(ctx context.Context, db bun.IDB) (int, error) {
	db = r.resolveDB(db)
	n, err := db.NewSelect().Model((*Score)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count scores: %w", err)
	}
	return n, nil
}

func (r *Impl) ListTeamTotals(ctx context.Context, db bun.IDB) ([]TeamTotal, error) {
	db = r.resolveDB(db)
	var totals []TeamTotal
	err := db.NewSelect().
		Model((*Score)(nil)).
		Column("team_id", "total_score").
		Where("total_score IS NOT NULL").
		OrderExpr("total_score DESC, team_id ASC").
		Scan(ctx, &totals)
	if err != nil {
		return nil, fmt.Errorf("failed to list team totals: %w", err)
	}
	return totals, nil
}
