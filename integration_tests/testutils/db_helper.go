//go:build integration

package testutils

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// TruncateTables truncates the specified tables
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}

	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = fmt.Sprintf(`"%s"`, table)
	}

	query := "TRUNCATE TABLE " + strings.Join(quoted, ", ") + " RESTART IDENTITY CASCADE"
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables %v: %w", tables, err)
	}
	return nil
}

// CleanScoreIntegrationTables truncates score tables.
func CleanScoreIntegrationTables(ctx context.Context, db *bun.DB) error {
	return TruncateTables(ctx, db, "scores")
}

// CleanUserIntegrationTables truncates user tables.
func CleanUserIntegrationTables(ctx context.Context, db *bun.DB) error {
	return TruncateTables(ctx, db, "users")
}

// CleanAdminLogIntegrationTables truncates the admin action log.
func CleanAdminLogIntegrationTables(ctx context.Context, db *bun.DB) error {
	return TruncateTables(ctx, db, "admin_action_log")
}

// CleanAllIntegrationTables truncates every module table.
func CleanAllIntegrationTables(ctx context.Context, db *bun.DB) error {
	return TruncateTables(ctx, db, "scores", "users", "admin_action_log")
}
