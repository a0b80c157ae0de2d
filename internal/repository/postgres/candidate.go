package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/talentohq/ats-server/internal/domain"
	"github.com/talentohq/ats-server/internal/service/candidate"
)

// CandidateRepo implements candidate.Repository against PostgreSQL.
type CandidateRepo struct{ db *sql.DB }

// NewCandidateRepo creates a Postgres-backed candidate repository.
func NewCandidateRepo(db *sql.DB) *CandidateRepo { return &CandidateRepo{db: db} }

const candidateColumns = `
	id, process_id, stage_id, name, email,
	COALESCE(phone,''), COALESCE(description,''), COALESCE(source,''),
	COALESCE(salary_expectation,''), COALESCE(agreed_salary,''),
	age, COALESCE(dni,''), COALESCE(linkedin_url,''), COALESCE(address,''),
	province, district, attachments, hired_at, created_at, updated_at`

func scanCandidate(row interface{ Scan(...interface{}) error }) (*domain.Candidate, error) {
	c := &domain.Candidate{}
	var age sql.NullInt64
	var province, district sql.NullString
	var hiredAt sql.NullTime
	err := row.Scan(
		&c.ID, &c.ProcessID, &c.StageID, &c.Name, &c.Email,
		&c.Phone, &c.Description, &c.Source,
		&c.SalaryExpectation, &c.AgreedSalary,
		&age, &c.DNI, &c.LinkedInURL, &c.Address,
		&province, &district, pq.Array(&c.Attachments), &hiredAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if age.Valid {
		v := int(age.Int64)
		c.Age = &v
	}
	if province.Valid {
		c.Province = &province.String
	}
	if district.Valid {
		c.District = &district.String
	}
	if hiredAt.Valid {
		c.HiredAt = &hiredAt.Time
	}
	if c.Attachments == nil {
		c.Attachments = []string{}
	}
	return c, nil
}

func (r *CandidateRepo) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+candidateColumns+`
		FROM ats_candidates
		WHERE id = $1
	`, id)
	c, err := scanCandidate(row)
	if err == sql.ErrNoRows {
		return nil, candidate.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

func (r *CandidateRepo) ListByProcess(ctx context.Context, processID string, f candidate.ListFilter) ([]domain.Candidate, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	countQ := `SELECT COUNT(*) FROM ats_candidates WHERE process_id = $1`
	countArgs := []interface{}{processID}
	idx := 2
	if f.StageID != "" {
		countQ += fmt.Sprintf(" AND stage_id = $%d", idx)
		countArgs = append(countArgs, f.StageID)
		idx++
	}
	if f.Search != "" {
		countQ += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d)", idx, idx)
		countArgs = append(countArgs, "%"+f.Search+"%")
		idx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count candidates: %w", err)
	}

	q := `SELECT ` + candidateColumns + ` FROM ats_candidates WHERE process_id = $1`
	args := []interface{}{processID}
	qIdx := 2
	if f.StageID != "" {
		q += fmt.Sprintf(" AND stage_id = $%d", qIdx)
		args = append(args, f.StageID)
		qIdx++
	}
	if f.Search != "" {
		q += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d)", qIdx, qIdx)
		args = append(args, "%"+f.Search+"%")
		qIdx++
	}
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", qIdx, qIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, *c)
	}
	return out, total, nil
}

func (r *CandidateRepo) Create(ctx context.Context, c *domain.Candidate) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ats_candidates
			(id, process_id, stage_id, name, email, phone, description, source,
			 salary_expectation, agreed_salary, age, dni, linkedin_url, address,
			 province, district, attachments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
	`, c.ID, c.ProcessID, c.StageID, c.Name, c.Email, c.Phone, c.Description, c.Source,
		c.SalaryExpectation, c.AgreedSalary, nullableInt(c.Age), c.DNI, c.LinkedInURL, c.Address,
		nullableString(c.Province), nullableString(c.District), pq.Array(c.Attachments))
	if err != nil {
		return "", fmt.Errorf("create candidate: %w", err)
	}
	return c.ID, nil
}

func (r *CandidateRepo) Update(ctx context.Context, id string, u candidate.UpdateFields) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1
	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Email != nil {
		add("email", *u.Email)
	}
	if u.Phone != nil {
		add("phone", *u.Phone)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Source != nil {
		add("source", *u.Source)
	}
	if u.SalaryExpectation != nil {
		add("salary_expectation", *u.SalaryExpectation)
	}
	if u.AgreedSalary != nil {
		add("agreed_salary", *u.AgreedSalary)
	}
	if u.Age != nil {
		add("age", *u.Age)
	}
	if u.DNI != nil {
		add("dni", *u.DNI)
	}
	if u.LinkedInURL != nil {
		add("linkedin_url", *u.LinkedInURL)
	}
	if u.Address != nil {
		add("address", *u.Address)
	}
	// Location fields are explicitly nullable: a present-but-empty value
	// still overwrites whatever was stored.
	if u.Province != nil {
		add("province", *u.Province)
	}
	if u.District != nil {
		add("district", *u.District)
	}
	if u.HiredAt != nil {
		add("hired_at", *u.HiredAt)
	}

	if len(sets) == 0 {
		return nil
	}

	q := fmt.Sprintf("UPDATE ats_candidates SET %s, updated_at = NOW() WHERE id = $%d",
		strings.Join(sets, ", "), idx)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func (r *CandidateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ats_candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func (r *CandidateRepo) MoveStage(ctx context.Context, id, stageID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ats_candidates SET stage_id = $1, updated_at = NOW()
		WHERE id = $2
	`, stageID, id)
	if err != nil {
		return fmt.Errorf("move candidate: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
