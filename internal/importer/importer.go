package importer

import (
	"context"
	"fmt"

	"github.com/talentohq/ats-server/internal/domain"
	"github.com/talentohq/ats-server/internal/pkg/logger"
	"github.com/talentohq/ats-server/internal/service/candidate"
)

// maxDisplayedErrors caps how many row errors a result carries back to
// the UI; the remainder is summarized as a count.
const maxDisplayedErrors = 10

// CandidateCreator is the subset of the candidate service the importer
// needs to submit rows.
type CandidateCreator interface {
	Create(ctx context.Context, in candidate.CreateInput) (*domain.Candidate, error)
}

// ProcessLookup resolves the selection process rows are imported into.
type ProcessLookup interface {
	Get(ctx context.Context, id string) (*domain.Process, error)
}

// Service runs bulk candidate imports against a selection process.
type Service struct {
	candidates CandidateCreator
	processes  ProcessLookup
	history    *History
}

// NewService creates an import service.
func NewService(candidates CandidateCreator, processes ProcessLookup) *Service {
	return &Service{candidates: candidates, processes: processes}
}

// SetHistory attaches an optional recent-import log. Imports work the
// same without one; recording failures are warn-only.
func (s *Service) SetHistory(h *History) { s.history = h }

// Import submits every parsed row to the given process. Rows land in the
// process's first stage. A bad row never aborts the batch: it is counted
// as failed and reported with its 1-based file row number (row 2 is the
// first data row, after the header).
//
// Before any row is touched the process is validated: a process with no
// stages rejects the whole import with a ConfigurationError.
func (s *Service) Import(ctx context.Context, rows []RawRow, processID string) (*ImportResult, error) {
	proc, err := s.processes.Get(ctx, processID)
	if err != nil {
		return nil, fmt.Errorf("loading process %s: %w", processID, err)
	}
	first := proc.FirstStage()
	if first == nil {
		return nil, &ConfigurationError{ProcessID: processID, Reason: "el proceso no tiene etapas configuradas"}
	}

	result := &ImportResult{Errors: []string{}}
	addError := func(msg string) {
		result.FailedCount++
		if len(result.Errors) < maxDisplayedErrors {
			result.Errors = append(result.Errors, msg)
		} else {
			result.TruncatedErrors++
		}
	}

	for i, raw := range rows {
		rowNum := i + 2
		row := NormalizeRow(raw)

		name := row[FieldName].Text()
		email := row[FieldEmail].Text()
		if name == "" || email == "" {
			addError(fmt.Sprintf("Fila %d: Faltan campos requeridos (nombre y email)", rowNum))
			continue
		}
		if !domain.ValidEmail(email) {
			addError(fmt.Sprintf("Fila %d: Email inválido: %s", rowNum, email))
			continue
		}

		if _, err := s.candidates.Create(ctx, buildCreateInput(row, processID, first.ID)); err != nil {
			addError(fmt.Sprintf("Fila %d: %s", rowNum, err.Error()))
			continue
		}
		result.SuccessCount++
	}

	logger.Info("import finished",
		"process_id", processID,
		"imported", result.SuccessCount,
		"failed", result.FailedCount)

	if s.history != nil {
		rec := ImportRecord{
			ProcessID:       processID,
			ProcessTitle:    proc.Title,
			SuccessCount:    result.SuccessCount,
			FailedCount:     result.FailedCount,
			Errors:          result.Errors,
			TruncatedErrors: result.TruncatedErrors,
		}
		if err := s.history.Record(ctx, rec); err != nil {
			logger.Warn("failed to record import history", "error", err.Error())
		}
	}

	return result, nil
}

func buildCreateInput(row RawRow, processID, stageID string) candidate.CreateInput {
	in := candidate.CreateInput{
		ProcessID:         processID,
		StageID:           stageID,
		Name:              row[FieldName].Text(),
		Email:             row[FieldEmail].Text(),
		Phone:             row[FieldPhone].Text(),
		Description:       row[FieldDescription].Text(),
		Source:            row[FieldSource].Text(),
		SalaryExpectation: row[FieldSalaryExpectation].Text(),
		AgreedSalary:      row[FieldAgreedSalary].Text(),
		DNI:               row[FieldDNI].Text(),
		LinkedInURL:       row[FieldLinkedInURL].Text(),
		Address:           row[FieldAddress].Text(),
		Attachments:       []string{},
	}
	if v, ok := row[FieldAge]; ok && v.Kind == KindNumber {
		age := int(v.Num)
		in.Age = &age
	}
	if v, ok := row[FieldProvince]; ok {
		p := v.Text()
		in.Province = &p
	}
	if v, ok := row[FieldDistrict]; ok {
		d := v.Text()
		in.District = &d
	}
	return in
}
