package scoremigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scores table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS scores (
					id UUID PRIMARY KEY,
					team_id TEXT NOT NULL,
					review_number SMALLINT NOT NULL CHECK (review_number IN (1, 2, 3)),
					points DOUBLE PRECISION NOT NULL CHECK (points >= 0),
					total_score DOUBLE PRECISION,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT uq_scores_team_review UNIQUE (team_id, review_number)
				);
				CREATE INDEX IF NOT EXISTS idx_scores_team_id ON scores(team_id);
				CREATE INDEX IF NOT EXISTS idx_scores_total_score ON scores(total_score DESC) WHERE total_score IS NOT NULL;
			`); err != nil {
				return fmt.Errorf("failed to create scores table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scores table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS scores;`); err != nil {
				return fmt.Errorf("failed to drop scores table: %w", err)
			}
			return nil
		})
	})
}
