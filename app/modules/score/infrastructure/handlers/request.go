package scorehandlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"

	scoredomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/domain"
)

const (
	// maxBodyBytes bounds a submission body.
	maxBodyBytes = 1 << 16

	msgFieldsRequired = "team_id, review_number, and points are required"
	msgBodyObject     = "request body must be a JSON object"
)

// submitScoreBody keeps each field raw so absent, null and mistyped values
// can be told apart before the domain validation runs.
type submitScoreBody struct {
	TeamID       json.RawMessage `json:"team_id"`
	ReviewNumber json.RawMessage `json:"review_number"`
	Points       json.RawMessage `json:"points"`
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeSubmitScore reads and types the submission body. Range checks are left
// to SubmitScoreRequest.Validate.
func decodeSubmitScore(body io.Reader) (scoredomain.SubmitScoreRequest, error) {
	var raw submitScoreBody
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	if err := dec.Decode(&raw); err != nil {
		return scoredomain.SubmitScoreRequest{}, scoredomain.NewValidationError("body", msgBodyObject)
	}
	// Exactly one value; trailing whitespace only.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return scoredomain.SubmitScoreRequest{}, scoredomain.NewValidationError("body", msgBodyObject)
	}

	switch {
	case isAbsent(raw.TeamID):
		return scoredomain.SubmitScoreRequest{}, scoredomain.NewValidationError("team_id", msgFieldsRequired)
	case isAbsent(raw.ReviewNumber):
		return scoredomain.SubmitScoreRequest{}, scoredomain.NewValidationError("review_number", msgFieldsRequired)
	case isAbsent(raw.Points):
		return scoredomain.SubmitScoreRequest{}, scoredomain.NewValidationError("points", msgFieldsRequired)
	}

	var req scoredomain.SubmitScoreRequest

	if err := json.Unmarshal(raw.TeamID, &req.TeamID); err != nil {
		return scoredomain.SubmitScoreRequest{}, scoredomain.NewValidationError("team_id", "team_id must be a string")
	}

	var review float64
	if err := json.Unmarshal(raw.ReviewNumber, &review); err != nil || review != math.Trunc(review) {
		return scoredomain.SubmitScoreRequest{}, scoredomain.NewValidationError("review_number", "review_number must be 1, 2, or 3")
	}
	if review < 1 || review > 3 {
		return scoredomain.SubmitScoreRequest{}, scoredomain.NewValidationError("review_number", "review_number must be 1, 2, or 3")
	}
	req.ReviewNumber = scoredomain.ReviewNumber(review)

	if err := json.Unmarshal(raw.Points, &req.Points); err != nil {
		return scoredomain.SubmitScoreRequest{}, scoredomain.NewValidationError("points", "points must be a non-negative number")
	}

	return req, nil
}
