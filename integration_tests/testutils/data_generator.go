//go:build integration

package testutils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	scoredomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/domain"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
	seq   int
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// GenerateTeamIDs returns count distinct team ids.
func (g *TestDataGenerator) GenerateTeamIDs(count int) []string {
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		g.seq++
		name := strings.ToLower(strings.ReplaceAll(g.faker.AppName(), " ", "-"))
		ids = append(ids, fmt.Sprintf("team-%s-%d", name, g.seq))
	}
	return ids
}

// GenerateEmail returns a unique email address.
func (g *TestDataGenerator) GenerateEmail() string {
	g.seq++
	return fmt.Sprintf("%d.%s", g.seq, strings.ToLower(g.faker.Email()))
}

// GeneratePoints returns a non-negative score with two decimals.
func (g *TestDataGenerator) GeneratePoints() float64 {
	return math.Round(g.faker.Float64Range(0, 100)*100) / 100
}

// GenerateSubmissions returns one submission for every review round of every team.
func (g *TestDataGenerator) GenerateSubmissions(teamIDs []string) []scoredomain.SubmitScoreRequest {
	out := make([]scoredomain.SubmitScoreRequest, 0, len(teamIDs)*3)
	for _, teamID := range teamIDs {
		for review := 1; review <= 3; review++ {
			out = append(out, scoredomain.SubmitScoreRequest{
				TeamID:       teamID,
				ReviewNumber: scoredomain.ReviewNumber(review),
				Points:       g.GeneratePoints(),
			})
		}
	}
	return out
}
