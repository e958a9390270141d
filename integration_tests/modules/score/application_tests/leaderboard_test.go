//go:build integration

package scoreintegrationtests

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	scoredomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/domain"
)

func TestGetLeaderboard_RanksOneEntryPerTeam(t *testing.T) {
	deps := SetupTestScoreService(t)

	for _, req := range []scoredomain.SubmitScoreRequest{
		{TeamID: "T1", ReviewNumber: 1, Points: 10},
		{TeamID: "T2", ReviewNumber: 1, Points: 50},
		{TeamID: "T3", ReviewNumber: 1, Points: 5},
		{TeamID: "T3", ReviewNumber: 2, Points: 5},
		{TeamID: "T4", ReviewNumber: 3, Points: 10},
	} {
		_, err := deps.Service.SubmitScore(deps.Ctx, req)
		require.NoError(t, err)
	}

	got, err := deps.Service.GetLeaderboard(deps.Ctx)
	require.NoError(t, err)

	want := []scoredomain.LeaderboardEntry{
		{Rank: 1, TeamID: "T2", TotalScore: 50},
		{Rank: 2, TeamID: "T1", TotalScore: 10},
		{Rank: 3, TeamID: "T3", TotalScore: 10},
		{Rank: 4, TeamID: "T4", TotalScore: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("leaderboard mismatch (-want +got):\n%s", diff)
	}
}

func TestGetLeaderboard_SkipsRowsWithoutTotal(t *testing.T) {
	deps := SetupTestScoreService(t)

	_, err := deps.BunDB.ExecContext(deps.Ctx,
		`INSERT INTO scores (id, team_id, review_number, points) VALUES (gen_random_uuid(), 'pending', 1, 7)`)
	require.NoError(t, err)

	_, err = deps.Service.SubmitScore(deps.Ctx, scoredomain.SubmitScoreRequest{TeamID: "T1", ReviewNumber: 1, Points: 3})
	require.NoError(t, err)

	got, err := deps.Service.GetLeaderboard(deps.Ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "T1", got[0].TeamID)
}

func TestExportScores_WorkbookHasBothSheets(t *testing.T) {
	deps := SetupTestScoreService(t)

	_, err := deps.Service.SubmitScore(deps.Ctx, scoredomain.SubmitScoreRequest{TeamID: "T1", ReviewNumber: 1, Points: 12.5})
	require.NoError(t, err)

	data, err := deps.Service.ExportScores(deps.Ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Scores", "Leaderboard"}, f.GetSheetList())

	rows, err := f.GetRows("Scores")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
