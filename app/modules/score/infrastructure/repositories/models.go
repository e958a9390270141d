package scoredb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Score is a single (team, review round) score row.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	TeamID       string    `bun:"team_id,notnull"`
	ReviewNumber int       `bun:"review_number,notnull"`
	Points       float64   `bun:"points,notnull"`
	TotalScore   *float64  `bun:"total_score"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
	UpdatedAt    time.Time `bun:"updated_at,notnull"`
}

// TeamTotal is the projection read for the leaderboard.
type TeamTotal struct {
	TeamID     string  `bun:"team_id"`
	TotalScore float64 `bun:"total_score"`
}
