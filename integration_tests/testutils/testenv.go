//go:build integration

package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/hackathon-admin/config"
	"github.com/Black-And-White-Club/hackathon-admin/db/bundb"
	"github.com/Black-And-White-Club/hackathon-admin/integration_tests/containers"
)

// TestJWTSecret signs tokens in integration tests.
const TestJWTSecret = "integration-test-secret"

// TestEnvironment holds all resources needed for integration testing
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	DB            *bun.DB
	Config        *config.Config
}

var (
	sharedEnv     *TestEnvironment
	sharedEnvErr  error
	sharedEnvOnce sync.Once
)

// GetOrCreateTestEnv returns the package-wide environment, starting the
// container on first use. Tests are skipped under -short.
func GetOrCreateTestEnv(t *testing.T) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	sharedEnvOnce.Do(func() {
		sharedEnv, sharedEnvErr = NewTestEnvironment()
	})
	if sharedEnvErr != nil {
		t.Fatalf("failed to create test environment: %v", sharedEnvErr)
	}
	return sharedEnv
}

// NewTestEnvironment starts Postgres, connects through the pgx stdlib driver and
// applies every module migration.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}

	sqlDB, err := sql.Open("pgx", pgConnStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}

	db := bundb.BunDB(sqlDB, false)

	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := bundb.Migrate(ctx, db, discardLogger); err != nil {
		_ = db.Close()
		_ = pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		PgContainer:   pgContainer,
		DB:            db,
		Config: &config.Config{
			Postgres: config.PostgresConfig{DSN: pgConnStr},
			HTTP:     config.HTTPConfig{Address: "127.0.0.1:0", ShutdownTimeout: 5 * time.Second},
			JWT:      config.JWTConfig{Secret: TestJWTSecret, DefaultTTL: time.Hour},
		},
	}, nil
}

// Reset truncates every table the modules own.
func (env *TestEnvironment) Reset(t *testing.T) {
	t.Helper()
	if err := CleanAllIntegrationTables(env.Ctx, env.DB); err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}
}

// Cleanup tears down all resources created for testing
func (env *TestEnvironment) Cleanup() {
	if env == nil {
		return
	}
	log.Println("Cleaning up test environment...")
	if env.DB != nil {
		_ = env.DB.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
	if env.CancelContext != nil {
		env.CancelContext()
	}
	log.Println("Cleanup complete.")
}

// CleanupShared tears down the environment created by GetOrCreateTestEnv.
// Call it from TestMain after m.Run.
func CleanupShared() {
	sharedEnv.Cleanup()
}
