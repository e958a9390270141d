package scoremigrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()

func init() {
	// Migration ids are derived from each registering file's name.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
