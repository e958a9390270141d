//go:build integration

package scoreintegrationtests

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	scoreservice "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/application"
	scoremetrics "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/infrastructure/metrics"
	scoredb "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-admin/integration_tests/testutils"
)

type TestDeps struct {
	Ctx     context.Context
	Repo    scoredb.Repository
	BunDB   *bun.DB
	Service scoreservice.Service
}

func SetupTestScoreService(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)

	if err := testutils.CleanScoreIntegrationTables(env.Ctx, env.DB); err != nil {
		t.Fatalf("Failed to truncate score tables: %v", err)
	}

	repo := scoredb.NewRepository(env.DB)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	noOpTracer := noop.NewTracerProvider().Tracer("test_score_service")

	service := scoreservice.NewScoreService(
		repo,
		nil, // no action log needed here
		testLogger,
		scoremetrics.NewNoop(),
		noOpTracer,
		env.DB,
	)

	return TestDeps{
		Ctx:     env.Ctx,
		Repo:    repo,
		BunDB:   env.DB,
		Service: service,
	}
}

// assertTeamTotal checks that every row of the team carries want as its total.
func assertTeamTotal(t *testing.T, deps TestDeps, teamID string, want float64) {
	t.Helper()

	rows, err := deps.Repo.ListByTeam(deps.Ctx, nil, teamID)
	if err != nil {
		t.Fatalf("Failed to list team rows: %v", err)
	}
	for _, row := range rows {
		if row.TotalScore == nil {
			t.Fatalf("row %s of team %s has no total", row.ID, teamID)
		}
		if *row.TotalScore != want {
			t.Errorf("row %s of team %s: total %.2f, want %.2f", row.ID, teamID, *row.TotalScore, want)
		}
	}
}
