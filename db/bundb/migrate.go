package bundb

import (
	"context"
	"fmt"
	"log/slog"

	adminlogmigrations "github.com/Black-And-White-Club/hackathon-admin/app/modules/adminlog/infrastructure/repositories/migrations"
	scoremigrations "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/hackathon-admin/app/modules/user/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrator is the migrator of one module's migration set.
type ModuleMigrator struct {
	Name     string
	Migrator *migrate.Migrator
}

// Migrators returns one migrator per module in the order they must run. All of
// them share the bun_migrations table.
func Migrators(db *bun.DB) []ModuleMigrator {
	return []ModuleMigrator{
		{Name: "user", Migrator: migrate.NewMigrator(db, usermigrations.Migrations)},
		{Name: "score", Migrator: migrate.NewMigrator(db, scoremigrations.Migrations)},
		{Name: "adminlog", Migrator: migrate.NewMigrator(db, adminlogmigrations.Migrations)},
	}
}

// FindMigrator looks a module's migrator up by name.
func FindMigrator(migrators []ModuleMigrator, name string) (*migrate.Migrator, bool) {
	for _, m := range migrators {
		if m.Name == name {
			return m.Migrator, true
		}
	}
	return nil, false
}

// Migrate creates the migration tables and applies every pending migration,
// module by module.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	for _, m := range Migrators(db) {
		if err := m.Migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init migrations for module %s: %w", m.Name, err)
		}
		group, err := m.Migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to migrate module %s: %w", m.Name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", "module", m.Name)
			continue
		}
		logger.InfoContext(ctx, "Migrated module", "module", m.Name, "group", group.String())
	}
	return nil
}
