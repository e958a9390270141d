package scoreservice

import (
	"context"
	"sort"
	"sync"

	scoredb "github.com/Black-And-White-Club/hackathon-admin/app/modules/score/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Score Repo
// ------------------------

type FakeScoreRepo struct {
	trace []string

	GetByIDFunc            func(ctx context.Context, db bun.IDB, id uuid.UUID) (*scoredb.Score, error)
	GetByTeamAndReviewFunc func(ctx context.Context, db bun.IDB, teamID string, reviewNumber int) (*scoredb.Score, error)
	InsertFunc             func(ctx context.Context, db bun.IDB, score *scoredb.Score) error
	UpdatePointsFunc       func(ctx context.Context, db bun.IDB, score *scoredb.Score) error
	DeleteFunc             func(ctx context.Context, db bun.IDB, id uuid.UUID) error
	ListAllFunc            func(ctx context.Context, db bun.IDB) ([]scoredb.Score, error)
	ListByTeamFunc         func(ctx context.Context, db bun.IDB, teamID string) ([]scoredb.Score, error)
	SetTeamTotalFunc       func(ctx context.Context, db bun.IDB, teamID string, total float64) (int64, error)
	CountFunc              func(ctx context.Context, db bun.IDB) (int, error)
	ListTeamTotalsFunc     func(ctx context.Context, db bun.IDB) ([]scoredb.TeamTotal, error)
}

func NewFakeScoreRepo() *FakeScoreRepo {
	return &FakeScoreRepo{
		trace: []string{},
	}
}

func (f *FakeScoreRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeScoreRepo) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*scoredb.Score, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeScoreRepo) GetByTeamAndReview(ctx context.Context, db bun.IDB, teamID string, reviewNumber int) (*scoredb.Score, error) {
	f.record("GetByTeamAndReview")
	if f.GetByTeamAndReviewFunc != nil {
		return f.GetByTeamAndReviewFunc(ctx, db, teamID, reviewNumber)
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeScoreRepo) Insert(ctx context.Context, db bun.IDB, score *scoredb.Score) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, score)
	}
	return nil
}

func (f *FakeScoreRepo) UpdatePoints(ctx context.Context, db bun.IDB, score *scoredb.Score) error {
	f.record("UpdatePoints")
	if f.UpdatePointsFunc != nil {
		return f.UpdatePointsFunc(ctx, db, score)
	}
	return nil
}

func (f *FakeScoreRepo) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeScoreRepo) ListAll(ctx context.Context, db bun.IDB) ([]scoredb.Score, error) {
	f.record("ListAll")
	if f.ListAllFunc != nil {
		return f.ListAllFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeScoreRepo) ListByTeam(ctx context.Context, db bun.IDB, teamID string) ([]scoredb.Score, error) {
	f.record("ListByTeam")
	if f.ListByTeamFunc != nil {
		return f.ListByTeamFunc(ctx, db, teamID)
	}
	return nil, nil
}

func (f *FakeScoreRepo) SetTeamTotal(ctx context.Context, db bun.IDB, teamID string, total float64) (int64, error) {
	f.record("SetTeamTotal")
	if f.SetTeamTotalFunc != nil {
		return f.SetTeamTotalFunc(ctx, db, teamID, total)
	}
	return 0, nil
}

func (f *FakeScoreRepo) Count(ctx context.Context, db bun.IDB) (int, error) {
	f.record("Count")
	if f.CountFunc != nil {
		return f.CountFunc(ctx, db)
	}
	return 0, nil
}

func (f *FakeScoreRepo) ListTeamTotals(ctx context.Context, db bun.IDB) ([]scoredb.TeamTotal, error) {
	f.record("ListTeamTotals")
	if f.ListTeamTotalsFunc != nil {
		return f.ListTeamTotalsFunc(ctx, db)
	}
	return nil, nil
}

// --- Accessors for assertions ---

func (f *FakeScoreRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ scoredb.Repository = (*FakeScoreRepo)(nil)

// ------------------------
// In-memory Score Store
// ------------------------

// memScoreRepo behaves like the Postgres repository, including the
// (team_id, review_number) uniqueness, so scenarios can run end to end.
type memScoreRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]scoredb.Score
}

func newMemScoreRepo() *memScoreRepo {
	return &memScoreRepo{rows: map[uuid.UUID]scoredb.Score{}}
}

func (m *memScoreRepo) GetByID(_ context.Context, _ bun.IDB, id uuid.UUID) (*scoredb.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, scoredb.ErrNotFound
	}
	return &row, nil
}

func (m *memScoreRepo) GetByTeamAndReview(_ context.Context, _ bun.IDB, teamID string, reviewNumber int) (*scoredb.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.TeamID == teamID && row.ReviewNumber == reviewNumber {
			r := row
			return &r, nil
		}
	}
	return nil, scoredb.ErrNotFound
}

func (m *memScoreRepo) Insert(_ context.Context, _ bun.IDB, score *scoredb.Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.TeamID == score.TeamID && row.ReviewNumber == score.ReviewNumber {
			return scoredb.ErrDuplicate
		}
	}
	m.rows[score.ID] = *score
	return nil
}

func (m *memScoreRepo) UpdatePoints(_ context.Context, _ bun.IDB, score *scoredb.Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[score.ID]
	if !ok {
		return scoredb.ErrNotFound
	}
	row.Points = score.Points
	m.rows[score.ID] = row
	return nil
}

func (m *memScoreRepo) Delete(_ context.Context, _ bun.IDB, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return scoredb.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memScoreRepo) ListAll(_ context.Context, _ bun.IDB) ([]scoredb.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]scoredb.Score, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].ReviewNumber < out[j].ReviewNumber
	})
	return out, nil
}

func (m *memScoreRepo) ListByTeam(ctx context.Context, db bun.IDB, teamID string) ([]scoredb.Score, error) {
	all, _ := m.ListAll(ctx, db)
	out := []scoredb.Score{}
	for _, row := range all {
		if row.TeamID == teamID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memScoreRepo) SetTeamTotal(_ context.Context, _ bun.IDB, teamID string, total float64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, row := range m.rows {
		if row.TeamID == teamID {
			t := total
			row.TotalScore = &t
			m.rows[id] = row
			n++
		}
	}
	return n, nil
}

func (m *memScoreRepo) Count(_ context.Context, _ bun.IDB) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}

func (m *memScoreRepo) ListTeamTotals(ctx context.Context, db bun.IDB) ([]scoredb.TeamTotal, error) {
	all, _ := m.ListAll(ctx, db)
	out := []scoredb.TeamTotal{}
	for _, row := range all {
		if row.TotalScore != nil {
			out = append(out, scoredb.TeamTotal{TeamID: row.TeamID, TotalScore: *row.TotalScore})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	return out, nil
}

var _ scoredb.Repository = (*memScoreRepo)(nil)

// ------------------------
// Fake Audit Recorder
// ------------------------

type auditEntry struct {
	Action, TargetTable, TargetID, Details string
}

type FakeAuditRecorder struct {
	entries []auditEntry
	err     error
}

func (f *FakeAuditRecorder) Record(_ context.Context, action, targetTable, targetID, details string) error {
	f.entries = append(f.entries, auditEntry{action, targetTable, targetID, details})
	return f.err
}

var _ AuditRecorder = (*FakeAuditRecorder)(nil)
