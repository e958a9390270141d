package scoredomain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReviewNumber identifies one of the judging rounds a team is scored in.
type ReviewNumber int

const (
	ReviewFirst  ReviewNumber = 1
	ReviewSecond ReviewNumber = 2
	ReviewThird  ReviewNumber = 3
)

// IsValid reports whether r is one of the three review rounds.
func (r ReviewNumber) IsValid() bool {
	switch r {
	case ReviewFirst, ReviewSecond, ReviewThird:
		return true
	default:
		return false
	}
}

// ScoreRecord is one team's points for one review round.
type ScoreRecord struct {
	ID           uuid.UUID    `json:"id"`
	TeamID       string       `json:"team_id"`
	ReviewNumber ReviewNumber `json:"review_number"`
	Points       float64      `json:"points"`
	// TotalScore is nil until the team's total has been aggregated.
	TotalScore *float64  `json:"total_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SubmitScoreRequest is the validated input for a score submission.
type SubmitScoreRequest struct {
	TeamID       string
	ReviewNumber ReviewNumber
	Points       float64
}

// Validate checks the request fields in the order a client would fix them.
func (r SubmitScoreRequest) Validate() error {
	if strings.TrimSpace(r.TeamID) == "" {
		return NewValidationError("team_id", "team_id is required")
	}
	if !r.ReviewNumber.IsValid() {
		return NewValidationError("review_number", "review_number must be 1, 2, or 3")
	}
	if !ValidPoints(r.Points) {
		return NewValidationError("points", "points must be a non-negative number")
	}
	return nil
}

// ValidPoints reports whether p is a finite, non-negative number.
func ValidPoints(p float64) bool {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return false
	}
	return p >= 0
}

// SumPoints totals a team's points. Nil entries count as zero.
func SumPoints(points []*float64) float64 {
	var total float64
	for _, p := range points {
		if p != nil {
			total += *p
		}
	}
	return total
}
