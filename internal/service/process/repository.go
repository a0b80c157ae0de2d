package process

import (
	"context"

	"github.com/talentohq/ats-server/internal/domain"
)

// Repository defines the data access contract for processes.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a process with its stages ordered by position.
	// Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Process, error)

	// List returns all processes ordered by created_at DESC, stages
	// included.
	List(ctx context.Context, filter ListFilter) ([]domain.Process, int, error)

	// Create inserts a process and its stages, returning the process ID.
	Create(ctx context.Context, p *domain.Process) (string, error)

	// Update modifies mutable process fields. Nil fields are not applied.
	Update(ctx context.Context, id string, u UpdateFields) error

	// Delete removes a process and its stages. Candidates in the process
	// are removed with it.
	Delete(ctx context.Context, id string) error
}

// ListFilter controls pagination and filtering for process lists.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

// UpdateFields holds the mutable fields for a process update.
type UpdateFields struct {
	Title       *string
	Description *string
}
