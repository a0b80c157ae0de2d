package candidate_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/talentohq/ats-server/internal/domain"
	"github.com/talentohq/ats-server/internal/service/candidate"
)

// memRepo is an in-memory candidate repository for unit testing.
type memRepo struct {
	mu         sync.Mutex
	candidates map[string]*domain.Candidate // keyed by id
}

func newMemRepo() *memRepo {
	return &memRepo{candidates: make(map[string]*domain.Candidate)}
}

func (m *memRepo) Get(_ context.Context, id string) (*domain.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return nil, candidate.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) ListByProcess(_ context.Context, processID string, f candidate.ListFilter) ([]domain.Candidate, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Candidate
	for _, c := range m.candidates {
		if c.ProcessID != processID {
			continue
		}
		if f.StageID != "" && c.StageID != f.StageID {
			continue
		}
		out = append(out, *c)
	}
	total := len(out)
	if f.Offset >= len(out) {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > len(out) || f.Limit <= 0 {
		end = len(out)
	}
	return out[f.Offset:end], total, nil
}

func (m *memRepo) Create(_ context.Context, c *domain.Candidate) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		return "", fmt.Errorf("id required")
	}
	cp := *c
	m.candidates[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memRepo) Update(_ context.Context, id string, u candidate.UpdateFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return candidate.ErrNotFound
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Province != nil {
		c.Province = u.Province
	}
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.candidates[id]; !ok {
		return candidate.ErrNotFound
	}
	delete(m.candidates, id)
	return nil
}

func (m *memRepo) MoveStage(_ context.Context, id, stageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return candidate.ErrNotFound
	}
	c.StageID = stageID
	return nil
}

// memProcesses serves a single fixed process.
type memProcesses struct {
	proc *domain.Process
}

func (m *memProcesses) Get(_ context.Context, id string) (*domain.Process, error) {
	if m.proc == nil || m.proc.ID != id {
		return nil, errors.New("process not found")
	}
	return m.proc, nil
}

func testProcess() *domain.Process {
	return &domain.Process{
		ID:    "proc-1",
		Title: "Backend Engineer",
		Stages: []domain.Stage{
			{ID: "stage-1", ProcessID: "proc-1", Name: "Postulados", Position: 0},
			{ID: "stage-2", ProcessID: "proc-1", Name: "Entrevista", Position: 1},
		},
	}
}

func newTestService(repo *memRepo) *candidate.Service {
	return candidate.NewService(repo, &memProcesses{proc: testProcess()})
}

func TestCreate(t *testing.T) {
	svc := newTestService(newMemRepo())
	c, err := svc.Create(context.Background(), candidate.CreateInput{
		ProcessID: "proc-1", Name: "Ana Ruiz", Email: "ana@test.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.StageID != "stage-1" {
		t.Fatalf("expected first stage, got %s", c.StageID)
	}
	if c.Attachments == nil {
		t.Fatal("attachments should be initialized")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(newMemRepo())

	_, err := svc.Create(context.Background(), candidate.CreateInput{ProcessID: "proc-1"})
	if !errors.Is(err, candidate.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	_, err = svc.Create(context.Background(), candidate.CreateInput{
		ProcessID: "proc-1", Name: "Ana", Email: "not-an-email",
	})
	if !errors.Is(err, candidate.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
}

func TestCreateUnknownStage(t *testing.T) {
	svc := newTestService(newMemRepo())
	_, err := svc.Create(context.Background(), candidate.CreateInput{
		ProcessID: "proc-1", StageID: "stage-99", Name: "Ana", Email: "ana@test.com",
	})
	if err != candidate.ErrStageNotFound {
		t.Fatalf("expected ErrStageNotFound, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(newMemRepo())
	_, err := svc.Get(context.Background(), "nonexistent")
	if err != candidate.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMoveStage(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	c, _ := svc.Create(context.Background(), candidate.CreateInput{
		ProcessID: "proc-1", Name: "Ana", Email: "ana@test.com",
	})

	if err := svc.MoveStage(context.Background(), c.ID, "stage-2"); err != nil {
		t.Fatalf("move: %v", err)
	}
	got, _ := svc.Get(context.Background(), c.ID)
	if got.StageID != "stage-2" {
		t.Fatalf("expected stage-2, got %s", got.StageID)
	}

	if err := svc.MoveStage(context.Background(), c.ID, "stage-99"); err != candidate.ErrStageNotFound {
		t.Fatalf("expected ErrStageNotFound, got %v", err)
	}
}

func TestUpdateClearsProvince(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	prov := "Lima"
	c, _ := svc.Create(context.Background(), candidate.CreateInput{
		ProcessID: "proc-1", Name: "Ana", Email: "ana@test.com", Province: &prov,
	})

	empty := ""
	if err := svc.Update(context.Background(), c.ID, candidate.UpdateFields{Province: &empty}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := svc.Get(context.Background(), c.ID)
	if got.Province == nil || *got.Province != "" {
		t.Fatalf("expected cleared province, got %v", got.Province)
	}
}

func TestDelete(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	c, _ := svc.Create(context.Background(), candidate.CreateInput{
		ProcessID: "proc-1", Name: "Ana", Email: "ana@test.com",
	})

	if err := svc.Delete(context.Background(), c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err := svc.Get(context.Background(), c.ID)
	if err != candidate.ErrNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestListWithFilter(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	svc.Create(context.Background(), candidate.CreateInput{
		ProcessID: "proc-1", Name: "Ana", Email: "ana@test.com",
	})
	svc.Create(context.Background(), candidate.CreateInput{
		ProcessID: "proc-1", Name: "Beto", Email: "beto@test.com",
	})

	list, total, err := svc.ListByProcess(context.Background(), "proc-1", candidate.ListFilter{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("expected 2 candidates, got %d (total %d)", len(list), total)
	}

	byStage, _, _ := svc.ListByProcess(context.Background(), "proc-1", candidate.ListFilter{StageID: "stage-2", Limit: 10})
	if len(byStage) != 0 {
		t.Fatalf("expected 0 in stage-2, got %d", len(byStage))
	}
}
