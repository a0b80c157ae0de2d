package candidate

import (
	"context"
	"time"

	"github.com/talentohq/ats-server/internal/domain"
)

// Repository defines the data access contract for candidates.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a single candidate. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Candidate, error)

	// ListByProcess returns candidates in a process matching the filter,
	// ordered by created_at DESC.
	ListByProcess(ctx context.Context, processID string, filter ListFilter) ([]domain.Candidate, int, error)

	// Create inserts a new candidate and returns its ID.
	Create(ctx context.Context, c *domain.Candidate) (string, error)

	// Update modifies a candidate. Only non-nil fields in the update are applied.
	Update(ctx context.Context, id string, u UpdateFields) error

	// Delete removes a candidate.
	Delete(ctx context.Context, id string) error

	// MoveStage reassigns a candidate to another stage of its process.
	MoveStage(ctx context.Context, id, stageID string) error
}

// ListFilter controls pagination and filtering for candidate lists.
type ListFilter struct {
	StageID string
	Search  string
	Limit   int
	Offset  int
}

// UpdateFields holds the mutable fields for a candidate update.
// Nil fields are not applied; a pointer to the empty string clears the
// stored value. HiredAt records the hire decision and feeds the
// incorporation date in generated letters.
type UpdateFields struct {
	Name              *string
	Email             *string
	Phone             *string
	Description       *string
	Source            *string
	SalaryExpectation *string
	AgreedSalary      *string
	Age               *int
	DNI               *string
	LinkedInURL       *string
	Address           *string
	Province          *string
	District          *string
	HiredAt           *time.Time
}
