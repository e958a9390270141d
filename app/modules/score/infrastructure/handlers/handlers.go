package scorehandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	scoreservice "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/application"
	scoredomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/domain"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/attr"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/httpjson"
	"github.com/go-chi/chi/v5"
)

// ScoreHandlers implements the Handlers interface.
type ScoreHandlers struct {
	service scoreservice.Service
	logger  *slog.Logger
}

// NewScoreHandlers creates a new ScoreHandlers instance.
func NewScoreHandlers(service scoreservice.Service, logger *slog.Logger) Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreHandlers{
		service: service,
		logger:  logger,
	}
}

type submitScoreResponse struct {
	httpjson.Response
	Score scoredomain.ScoreRecord `json:"score"`
}

type listScoresResponse struct {
	httpjson.Response
	Scores []scoredomain.ScoreRecord `json:"scores"`
	Count  int                       `json:"count"`
}

type teamScoresResponse struct {
	httpjson.Response
	TeamID string                    `json:"teamId"`
	Scores []scoredomain.ScoreRecord `json:"scores"`
	Count  int                       `json:"count"`
}

type leaderboardResponse struct {
	httpjson.Response
	Leaderboard []scoredomain.LeaderboardEntry `json:"leaderboard"`
	Count       int                            `json:"count"`
}

func (h *ScoreHandlers) HandleSubmitScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decodeSubmitScore(r.Body)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to save score")
		return
	}

	res, err := h.service.SubmitScore(ctx, req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to save score")
		return
	}

	message := "Score updated successfully"
	if res.Created {
		message = "Score added successfully"
	}
	httpjson.Write(w, http.StatusOK, submitScoreResponse{
		Response: httpjson.Response{Success: true, Message: message},
		Score:    res.Score,
	})
}

func (h *ScoreHandlers) HandleListScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.service.GetAllScores(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch scores")
		return
	}
	httpjson.Write(w, http.StatusOK, listScoresResponse{
		Response: httpjson.Response{Success: true},
		Scores:   nonNil(scores),
		Count:    len(scores),
	})
}

func (h *ScoreHandlers) HandleTeamScores(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamId")
	scores, err := h.service.GetTeamScores(r.Context(), teamID)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch team scores")
		return
	}
	httpjson.Write(w, http.StatusOK, teamScoresResponse{
		Response: httpjson.Response{Success: true},
		TeamID:   teamID,
		Scores:   nonNil(scores),
		Count:    len(scores),
	})
}

func (h *ScoreHandlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.GetLeaderboard(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch leaderboard")
		return
	}
	if entries == nil {
		entries = []scoredomain.LeaderboardEntry{}
	}
	httpjson.Write(w, http.StatusOK, leaderboardResponse{
		Response:    httpjson.Response{Success: true},
		Leaderboard: entries,
		Count:       len(entries),
	})
}

func (h *ScoreHandlers) HandleLeaderboardChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.service.LeaderboardChart(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to render leaderboard chart")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write chart", attr.RequestID(r.Context()), attr.Error(err))
	}
}

func (h *ScoreHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportScores(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to export scores")
		return
	}
	filename := fmt.Sprintf("scores-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write export", attr.RequestID(r.Context()), attr.Error(err))
	}
}

func (h *ScoreHandlers) HandleDeleteScore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteScore(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "Failed to delete score")
		return
	}
	httpjson.OK(w, "Score deleted successfully")
}

// writeServiceError maps service errors onto HTTP statuses. Anything that is not
// a validation or not-found outcome is a store failure.
func (h *ScoreHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error, failMessage string) {
	ctx := r.Context()

	var vErr *scoredomain.ValidationError
	switch {
	case errors.As(err, &vErr):
		httpjson.Fail(w, http.StatusBadRequest, vErr.Message, "")
	case errors.Is(err, scoreservice.ErrScoreNotFound):
		httpjson.Fail(w, http.StatusNotFound, "Score not found", "")
	default:
		h.logger.ErrorContext(ctx, failMessage,
			attr.RequestID(ctx),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		httpjson.Fail(w, http.StatusInternalServerError, failMessage, err.Error())
	}
}

func nonNil(scores []scoredomain.ScoreRecord) []scoredomain.ScoreRecord {
	if scores == nil {
		return []scoredomain.ScoreRecord{}
	}
	return scores
}
