package process

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/talentohq/ats-server/internal/domain"
)

// Service implements process business logic.
type Service struct {
	repo Repository
}

// NewService creates a process service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a single process with its ordered stages.
func (s *Service) Get(ctx context.Context, id string) (*domain.Process, error) {
	return s.repo.Get(ctx, id)
}

// List returns processes matching the filter.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Process, int, error) {
	return s.repo.List(ctx, f)
}

// Create validates and persists a new process. Stages take their
// position from the order given. A process may be created with zero
// stages, but it cannot receive candidates until stages are added.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Process, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	p := &domain.Process{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Stages:      make([]domain.Stage, 0, len(input.Stages)),
	}
	for i, name := range input.Stages {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: stage %d has no name", ErrInvalidInput, i+1)
		}
		p.Stages = append(p.Stages, domain.Stage{
			ID:        uuid.New().String(),
			ProcessID: p.ID,
			Name:      name,
			Position:  i,
		})
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

// Update modifies mutable process fields.
func (s *Service) Update(ctx context.Context, id string, u UpdateFields) error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return fmt.Errorf("%w: title cannot be blank", ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, u)
}

// Delete removes a process and everything in it.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// CreateInput holds the fields for creating a new process.
type CreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Stages      []string `json:"stages"`
}
