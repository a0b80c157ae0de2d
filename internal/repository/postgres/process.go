package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/talentohq/ats-server/internal/domain"
	"github.com/talentohq/ats-server/internal/service/process"
)

// ProcessRepo implements process.Repository against PostgreSQL.
type ProcessRepo struct{ db *sql.DB }

// NewProcessRepo creates a Postgres-backed process repository.
func NewProcessRepo(db *sql.DB) *ProcessRepo { return &ProcessRepo{db: db} }

func (r *ProcessRepo) Get(ctx context.Context, id string) (*domain.Process, error) {
	p := &domain.Process{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, COALESCE(description,''), created_at, updated_at
		FROM ats_processes
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, process.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get process: %w", err)
	}

	stages, err := r.stagesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Stages = stages
	return p, nil
}

func (r *ProcessRepo) stagesFor(ctx context.Context, processID string) ([]domain.Stage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, process_id, name, position
		FROM ats_process_stages
		WHERE process_id = $1
		ORDER BY position ASC
	`, processID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	stages := []domain.Stage{}
	for rows.Next() {
		var s domain.Stage
		if err := rows.Scan(&s.ID, &s.ProcessID, &s.Name, &s.Position); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		stages = append(stages, s)
	}
	return stages, nil
}

func (r *ProcessRepo) List(ctx context.Context, f process.ListFilter) ([]domain.Process, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	countQ := `SELECT COUNT(*) FROM ats_processes`
	countArgs := []interface{}{}
	if f.Search != "" {
		countQ += ` WHERE title ILIKE $1`
		countArgs = append(countArgs, "%"+f.Search+"%")
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count processes: %w", err)
	}

	q := `SELECT id, title, COALESCE(description,''), created_at, updated_at FROM ats_processes`
	args := []interface{}{}
	idx := 1
	if f.Search != "" {
		q += fmt.Sprintf(" WHERE title ILIKE $%d", idx)
		args = append(args, "%"+f.Search+"%")
		idx++
	}
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list processes: %w", err)
	}
	defer rows.Close()

	var out []domain.Process
	for rows.Next() {
		var p domain.Process
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan process: %w", err)
		}
		out = append(out, p)
	}

	for i := range out {
		stages, err := r.stagesFor(ctx, out[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out[i].Stages = stages
	}
	return out, total, nil
}

func (r *ProcessRepo) Create(ctx context.Context, p *domain.Process) (string, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin create process: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ats_processes (id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`, p.ID, p.Title, p.Description)
	if err != nil {
		return "", fmt.Errorf("create process: %w", err)
	}

	for _, s := range p.Stages {
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ats_process_stages (id, process_id, name, position)
			VALUES ($1, $2, $3, $4)
		`, s.ID, p.ID, s.Name, s.Position)
		if err != nil {
			return "", fmt.Errorf("create stage: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit create process: %w", err)
	}
	return p.ID, nil
}

func (r *ProcessRepo) Update(ctx context.Context, id string, u process.UpdateFields) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1
	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if len(sets) == 0 {
		return nil
	}

	q := fmt.Sprintf("UPDATE ats_processes SET %s, updated_at = NOW() WHERE id = $%d",
		strings.Join(sets, ", "), idx)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update process: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return process.ErrNotFound
	}
	return nil
}

func (r *ProcessRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ats_processes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete process: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return process.ErrNotFound
	}
	return nil
}
