package scorehandlers

import "net/http"

// Handlers defines the HTTP handlers for the score module.
type Handlers interface {
	// HandleSubmitScore creates or updates a (team, review round) score.
	HandleSubmitScore(w http.ResponseWriter, r *http.Request)

	// HandleListScores lists every score.
	HandleListScores(w http.ResponseWriter, r *http.Request)

	// HandleTeamScores lists the scores of the team in the teamId path parameter.
	HandleTeamScores(w http.ResponseWriter, r *http.Request)

	// HandleLeaderboard returns the ranked leaderboard.
	HandleLeaderboard(w http.ResponseWriter, r *http.Request)

	// HandleLeaderboardChart returns the leaderboard as a PNG.
	HandleLeaderboardChart(w http.ResponseWriter, r *http.Request)

	// HandleExport returns all scores as an XLSX attachment.
	HandleExport(w http.ResponseWriter, r *http.Request)

	// HandleDeleteScore removes the score in the id path parameter.
	HandleDeleteScore(w http.ResponseWriter, r *http.Request)
}
