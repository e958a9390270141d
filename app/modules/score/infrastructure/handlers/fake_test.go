package scorehandlers

import (
	"context"

	scoreservice "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/application"
	scoredomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/domain"
)

// ------------------------
// Fake Score Service
// ------------------------

type FakeScoreService struct {
	trace []string

	SubmitScoreFunc      func(ctx context.Context, req scoredomain.SubmitScoreRequest) (*scoreservice.SubmitResult, error)
	GetAllScoresFunc     func(ctx context.Context) ([]scoredomain.ScoreRecord, error)
	GetTeamScoresFunc    func(ctx context.Context, teamID string) ([]scoredomain.ScoreRecord, error)
	GetLeaderboardFunc   func(ctx context.Context) ([]scoredomain.LeaderboardEntry, error)
	DeleteScoreFunc      func(ctx context.Context, id string) error
	RecomputeTotalFunc   func(ctx context.Context, teamID string) (float64, error)
	ExportScoresFunc     func(ctx context.Context) ([]byte, error)
	LeaderboardChartFunc func(ctx context.Context) ([]byte, error)
	CountScoresFunc      func(ctx context.Context) (int, error)
}

func NewFakeScoreService() *FakeScoreService {
	return &FakeScoreService{trace: []string{}}
}

func (f *FakeScoreService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScoreService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreService) SubmitScore(ctx context.Context, req scoredomain.SubmitScoreRequest) (*scoreservice.SubmitResult, error) {
	f.record("SubmitScore")
	if f.SubmitScoreFunc != nil {
		return f.SubmitScoreFunc(ctx, req)
	}
	return &scoreservice.SubmitResult{}, nil
}

func (f *FakeScoreService) GetAllScores(ctx context.Context) ([]scoredomain.ScoreRecord, error) {
	f.record("GetAllScores")
	if f.GetAllScoresFunc != nil {
		return f.GetAllScoresFunc(ctx)
	}
	return nil, nil
}

func (f *FakeScoreService) GetTeamScores(ctx context.Context, teamID string) ([]scoredomain.ScoreRecord, error) {
	f.record("GetTeamScores")
	if f.GetTeamScoresFunc != nil {
		return f.GetTeamScoresFunc(ctx, teamID)
	}
	return nil, nil
}

func (f *FakeScoreService) GetLeaderboard(ctx context.Context) ([]scoredomain.LeaderboardEntry, error) {
	f.record("GetLeaderboard")
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx)
	}
	return nil, nil
}

func (f *FakeScoreService) DeleteScore(ctx context.Context, id string) error {
	f.record("DeleteScore")
	if f.DeleteScoreFunc != nil {
		return f.DeleteScoreFunc(ctx, id)
	}
	return nil
}

func (f *FakeScoreService) RecomputeTotal(ctx context.Context, teamID string) (float64, error) {
	f.record("RecomputeTotal")
	if f.RecomputeTotalFunc != nil {
		return f.RecomputeTotalFunc(ctx, teamID)
	}
	return 0, nil
}

func (f *FakeScoreService) ExportScores(ctx context.Context) ([]byte, error) {
	f.record("ExportScores")
	if f.ExportScoresFunc != nil {
		return f.ExportScoresFunc(ctx)
	}
	return nil, nil
}

func (f *FakeScoreService) LeaderboardChart(ctx context.Context) ([]byte, error) {
	f.record("LeaderboardChart")
	if f.LeaderboardChartFunc != nil {
		return f.LeaderboardChartFunc(ctx)
	}
	return nil, nil
}

func (f *FakeScoreService) CountScores(ctx context.Context) (int, error) {
	f.record("CountScores")
	if f.CountScoresFunc != nil {
		return f.CountScoresFunc(ctx)
	}
	return 0, nil
}

var _ scoreservice.Service = (*FakeScoreService)(nil)
