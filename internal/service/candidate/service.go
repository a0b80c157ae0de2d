package candidate

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/talentohq/ats-server/internal/domain"
)

// ProcessLookup resolves the process a candidate belongs to, for stage
// validation on create and move.
type ProcessLookup interface {
	Get(ctx context.Context, id string) (*domain.Process, error)
}

// Service implements candidate business logic. All public methods are
// safe for concurrent use if the underlying repository is
// concurrency-safe.
type Service struct {
	repo      Repository
	processes ProcessLookup
}

// NewService creates a candidate service backed by the given repository.
func NewService(repo Repository, processes ProcessLookup) *Service {
	return &Service{repo: repo, processes: processes}
}

// Get returns a single candidate.
func (s *Service) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	return s.repo.Get(ctx, id)
}

// ListByProcess returns candidates in a process matching the filter.
func (s *Service) ListByProcess(ctx context.Context, processID string, f ListFilter) ([]domain.Candidate, int, error) {
	return s.repo.ListByProcess(ctx, processID, f)
}

// Create validates and persists a new candidate. The target stage must
// belong to the target process; when StageID is empty the candidate
// lands in the process's first stage.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Candidate, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !domain.ValidEmail(input.Email) {
		return nil, fmt.Errorf("%w: malformed email %q", ErrInvalidInput, input.Email)
	}

	proc, err := s.processes.Get(ctx, input.ProcessID)
	if err != nil {
		return nil, err
	}

	stageID := input.StageID
	if stageID == "" {
		first := proc.FirstStage()
		if first == nil {
			return nil, ErrStageNotFound
		}
		stageID = first.ID
	} else if !hasStage(proc, stageID) {
		return nil, ErrStageNotFound
	}

	c := &domain.Candidate{
		ID:                uuid.New().String(),
		ProcessID:         input.ProcessID,
		StageID:           stageID,
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		Description:       input.Description,
		Source:            input.Source,
		SalaryExpectation: input.SalaryExpectation,
		AgreedSalary:      input.AgreedSalary,
		Age:               input.Age,
		DNI:               input.DNI,
		LinkedInURL:       input.LinkedInURL,
		Address:           input.Address,
		Province:          input.Province,
		District:          input.District,
		Attachments:       input.Attachments,
	}
	if c.Attachments == nil {
		c.Attachments = []string{}
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// Update modifies mutable candidate fields.
func (s *Service) Update(ctx context.Context, id string, u UpdateFields) error {
	if u.Email != nil && *u.Email != "" && !domain.ValidEmail(*u.Email) {
		return fmt.Errorf("%w: malformed email %q", ErrInvalidInput, *u.Email)
	}
	return s.repo.Update(ctx, id, u)
}

// Delete removes a candidate.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// MoveStage moves a candidate to another stage of the same process.
func (s *Service) MoveStage(ctx context.Context, id, stageID string) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	proc, err := s.processes.Get(ctx, c.ProcessID)
	if err != nil {
		return err
	}
	if !hasStage(proc, stageID) {
		return ErrStageNotFound
	}
	return s.repo.MoveStage(ctx, id, stageID)
}

func hasStage(p *domain.Process, stageID string) bool {
	for _, st := range p.Stages {
		if st.ID == stageID {
			return true
		}
	}
	return false
}

// CreateInput holds the fields for creating a new candidate.
type CreateInput struct {
	ProcessID         string   `json:"process_id"`
	StageID           string   `json:"stage_id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Description       string   `json:"description"`
	Source            string   `json:"source"`
	SalaryExpectation string   `json:"salary_expectation"`
	AgreedSalary      string   `json:"agreed_salary"`
	Age               *int     `json:"age"`
	DNI               string   `json:"dni"`
	LinkedInURL       string   `json:"linkedin_url"`
	Address           string   `json:"address"`
	Province          *string  `json:"province"`
	District          *string  `json:"district"`
	Attachments       []string `json:"attachments"`
}
