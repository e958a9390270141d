package scoreservice

import (
	"context"
	"fmt"
	"time"

	scoredomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/domain"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/results"
	"github.com/uptrace/bun"
	"github.com/xuri/excelize/v2"
)

const (
	scoresSheet      = "Scores"
	leaderboardSheet = "Leaderboard"
)

type exportData struct {
	scores      []scoredomain.ScoreRecord
	leaderboard []scoredomain.LeaderboardEntry
}

// ExportScores reads scores and leaderboard from one snapshot and renders them as XLSX.
func (s *ScoreService) ExportScores(ctx context.Context) ([]byte, error) {
	result, err := withTelemetry(s, ctx, "ExportScores", "all", func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		data, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[exportData, error], error) {
			rows, err := s.repo.ListAll(ctx, db)
			if err != nil {
				return results.OperationResult[exportData, error]{}, fmt.Errorf("failed to list scores: %w", err)
			}
			leaderboard, err := s.leaderboardLogic(ctx, db)
			if err != nil {
				return results.OperationResult[exportData, error]{}, err
			}
			return results.SuccessResult[exportData, error](exportData{scores: toRecords(rows), leaderboard: leaderboard}), nil
		})
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}

		workbook, err := buildWorkbook(data.Success.scores, data.Success.leaderboard)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return results.SuccessResult[[]byte, error](workbook), nil
	})
	if err != nil {
		return nil, err
	}
	return *result.Success, nil
}

func buildWorkbook(scores []scoredomain.ScoreRecord, leaderboard []scoredomain.LeaderboardEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), scoresSheet); err != nil {
		return nil, fmt.Errorf("failed to name scores sheet: %w", err)
	}

	header := []interface{}{"ID", "Team", "Review", "Points", "Total", "Updated At"}
	if err := f.SetSheetRow(scoresSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write scores header: %w", err)
	}
	for i, sc := range scores {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		var total interface{}
		if sc.TotalScore != nil {
			total = *sc.TotalScore
		}
		row := []interface{}{sc.ID.String(), sc.TeamID, int(sc.ReviewNumber), sc.Points, total, sc.UpdatedAt.UTC().Format(time.RFC3339)}
		if err := f.SetSheetRow(scoresSheet, axis, &row); err != nil {
			return nil, fmt.Errorf("failed to write score row: %w", err)
		}
	}

	if _, err := f.NewSheet(leaderboardSheet); err != nil {
		return nil, fmt.Errorf("failed to create leaderboard sheet: %w", err)
	}
	header = []interface{}{"Rank", "Team", "Total"}
	if err := f.SetSheetRow(leaderboardSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write leaderboard header: %w", err)
	}
	for i, entry := range leaderboard {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{entry.Rank, entry.TeamID, entry.TotalScore}
		if err := f.SetSheetRow(leaderboardSheet, axis, &row); err != nil {
			return nil, fmt.Errorf("failed to write leaderboard row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
