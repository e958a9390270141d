package scoreservice

import (
	"bytes"
	"context"
	"fmt"

	scoredomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/domain"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/results"
	"github.com/uptrace/bun"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colours used for rendered charts.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	Leader     drawing.Color
	Text       drawing.Color
}

// DefaultPalette is the dashboard colour scheme.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorFromHex("111827"),
	Bar:        drawing.ColorFromHex("3B82F6"),
	Leader:     drawing.ColorFromHex("F59E0B"),
	Text:       drawing.ColorFromHex("F9FAFB"),
}

// maxChartBars caps how many teams are drawn.
const maxChartBars = 20

// LeaderboardChart renders the current leaderboard as a PNG.
func (s *ScoreService) LeaderboardChart(ctx context.Context) ([]byte, error) {
	result, err := withTelemetry(s, ctx, "LeaderboardChart", "all", func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		board, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]scoredomain.LeaderboardEntry, error], error) {
			entries, err := s.leaderboardLogic(ctx, db)
			if err != nil {
				return results.OperationResult[[]scoredomain.LeaderboardEntry, error]{}, err
			}
			return results.SuccessResult[[]scoredomain.LeaderboardEntry, error](entries), nil
		})
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}

		png, err := GenerateLeaderboardChart(*board.Success, DefaultPalette)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, fmt.Errorf("failed to render chart: %w", err)
		}
		return results.SuccessResult[[]byte, error](png), nil
	})
	if err != nil {
		return nil, err
	}
	return *result.Success, nil
}

// GenerateLeaderboardChart produces a PNG bar chart of team totals, leader highlighted.
func GenerateLeaderboardChart(entries []scoredomain.LeaderboardEntry, palette ChartPalette) ([]byte, error) {
	if len(entries) == 0 {
		return renderNoDataPlaceholder(palette)
	}
	if len(entries) > maxChartBars {
		entries = entries[:maxChartBars]
	}

	highest := entries[0].TotalScore
	bars := make([]chart.Value, len(entries))
	for i, entry := range entries {
		fill := palette.Bar
		if entry.Rank == 1 {
			fill = palette.Leader
		}
		bars[i] = chart.Value{
			Label: entry.TeamID,
			Value: entry.TotalScore,
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: fill,
				StrokeWidth: 1,
			},
		}
	}

	return renderBars("Leaderboard", bars, highest, palette)
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	bars := []chart.Value{{
		Label: "No scores yet",
		Value: 0,
		Style: chart.Style{FillColor: palette.Bar, StrokeColor: palette.Bar},
	}}
	return renderBars("Leaderboard", bars, 0, palette)
}

func renderBars(title string, bars []chart.Value, highest float64, palette ChartPalette) ([]byte, error) {
	// A zero-width range cannot be ticked, so always draw from 0 to at least 1.
	top := highest
	if top <= 0 {
		top = 1
	}

	graph := chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{FontColor: palette.Text},
		Width:      800,
		Height:     400,
		BarWidth:   30,
		BarSpacing: 10,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.Text,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.Text},
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
