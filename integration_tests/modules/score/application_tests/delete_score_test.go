//go:build integration

package scoreintegrationtests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scoreservice "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/application"
	scoredomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/domain"
)

func TestDeleteScore_RecomputesRemainingRows(t *testing.T) {
	deps := SetupTestScoreService(t)

	var ids []uuid.UUID
	for _, req := range []scoredomain.SubmitScoreRequest{
		{TeamID: "T1", ReviewNumber: 1, Points: 10},
		{TeamID: "T1", ReviewNumber: 2, Points: 20},
	} {
		res, err := deps.Service.SubmitScore(deps.Ctx, req)
		require.NoError(t, err)
		ids = append(ids, res.Score.ID)
	}

	require.NoError(t, deps.Service.DeleteScore(deps.Ctx, ids[1].String()))

	rows, err := deps.Repo.ListByTeam(deps.Ctx, nil, "T1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assertTeamTotal(t, deps, "T1", 10)
}

func TestDeleteScore_LastRowLeavesLeaderboard(t *testing.T) {
	deps := SetupTestScoreService(t)

	res, err := deps.Service.SubmitScore(deps.Ctx, scoredomain.SubmitScoreRequest{TeamID: "T1", ReviewNumber: 1, Points: 10})
	require.NoError(t, err)

	require.NoError(t, deps.Service.DeleteScore(deps.Ctx, res.Score.ID.String()))

	all, err := deps.Service.GetAllScores(deps.Ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	board, err := deps.Service.GetLeaderboard(deps.Ctx)
	require.NoError(t, err)
	assert.Empty(t, board)
}

func TestDeleteScore_UnknownID(t *testing.T) {
	deps := SetupTestScoreService(t)

	err := deps.Service.DeleteScore(deps.Ctx, uuid.NewString())
	assert.ErrorIs(t, err, scoreservice.ErrScoreNotFound)
}
