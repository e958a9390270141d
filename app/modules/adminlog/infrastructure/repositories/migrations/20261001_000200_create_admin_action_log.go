package adminlogmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating admin_action_log table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS admin_action_log (
				id BIGSERIAL PRIMARY KEY,
				admin_id BIGINT,
				action TEXT NOT NULL,
				target_table TEXT NOT NULL,
				target_id TEXT NOT NULL,
				details TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_admin_action_log_created_at ON admin_action_log (created_at DESC);
		`)
		if err != nil {
			return fmt.Errorf("failed to create admin_action_log table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping admin_action_log table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS admin_action_log;`); err != nil {
			return fmt.Errorf("failed to drop admin_action_log table: %w", err)
		}
		return nil
	})
}
