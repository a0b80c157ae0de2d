package domain

import "time"

// Stage is one step of a process pipeline. Stages are ordered by Position;
// imported candidates always enter at the first stage.
type Stage struct {
	ID        string `json:"id" db:"id"`
	ProcessID string `json:"process_id" db:"process_id"`
	Name      string `json:"name" db:"name"`
	Position  int    `json:"position" db:"position"`
}

// Process represents a hiring process (an open position) and its ordered
// pipeline of stages.
type Process struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Stages      []Stage   `json:"stages"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// FirstStage returns the stage with the lowest position, or nil if the
// process has no stages yet.
func (p *Process) FirstStage() *Stage {
	if len(p.Stages) == 0 {
		return nil
	}
	first := &p.Stages[0]
	for i := range p.Stages[1:] {
		if p.Stages[i+1].Position < first.Position {
			first = &p.Stages[i+1]
		}
	}
	return first
}
