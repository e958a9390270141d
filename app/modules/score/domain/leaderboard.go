package scoredomain

import (
	"cmp"
	"slices"
)

// TeamTotal is a team with its aggregated score as read from storage.
// Storage returns one row per score record, so a team may appear more than once.
type TeamTotal struct {
	TeamID     string
	TotalScore float64
}

// LeaderboardEntry is a ranked leaderboard line.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	TeamID     string  `json:"team_id"`
	TotalScore float64 `json:"total_score"`
}

// BuildLeaderboard collapses rows to one per team, keeping the first row seen,
// orders by total descending with team id ascending as the tie-break, and
// assigns ranks starting at 1. Tied teams receive distinct consecutive ranks.
func BuildLeaderboard(rows []TeamTotal) []LeaderboardEntry {
	seen := make(map[string]struct{}, len(rows))
	unique := make([]TeamTotal, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.TeamID]; ok {
			continue
		}
		seen[row.TeamID] = struct{}{}
		unique = append(unique, row)
	}

	slices.SortStableFunc(unique, func(a, b TeamTotal) int {
		if c := cmp.Compare(b.TotalScore, a.TotalScore); c != 0 {
			return c
		}
		return cmp.Compare(a.TeamID, b.TeamID)
	})

	entries := make([]LeaderboardEntry, len(unique))
	for i, row := range unique {
		entries[i] = LeaderboardEntry{
			Rank:       i + 1,
			TeamID:     row.TeamID,
			TotalScore: row.TotalScore,
		}
	}
	return entries
}
