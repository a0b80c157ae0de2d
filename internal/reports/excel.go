// Package reports builds downloadable spreadsheet exports of a
// selection process and its candidates.
package reports

import (
	"fmt"

	"github.com/talentohq/ats-server/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Resumen"
	candidatesSheet = "Candidatos"
)

var candidateHeaders = []string{
	"Nombre", "Email", "Teléfono", "Etapa", "Fuente",
	"Expectativa Salarial", "DNI", "Provincia", "Distrito",
}

// BuildProcessReport renders a two-sheet workbook: per-stage candidate
// counts and the full candidate list.
func BuildProcessReport(proc *domain.Process, cands []domain.Candidate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("creating summary sheet: %w", err)
	}
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return nil, fmt.Errorf("creating candidates sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	if err := writeSummary(f, headerStyle, proc, cands); err != nil {
		return nil, err
	}
	if err := writeCandidates(f, headerStyle, proc, cands); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, headerStyle int, proc *domain.Process, cands []domain.Candidate) error {
	byStage := make(map[string]int)
	for _, c := range cands {
		byStage[c.StageID]++
	}

	setCell(f, summarySheet, 1, 1, "Proceso")
	setCell(f, summarySheet, 2, 1, proc.Title)
	setCell(f, summarySheet, 1, 2, "Total de candidatos")
	setCell(f, summarySheet, 2, 2, len(cands))

	setCell(f, summarySheet, 1, 4, "Etapa")
	setCell(f, summarySheet, 2, 4, "Candidatos")
	if err := f.SetCellStyle(summarySheet, "A4", "B4", headerStyle); err != nil {
		return fmt.Errorf("styling summary header: %w", err)
	}

	for i, st := range proc.Stages {
		setCell(f, summarySheet, 1, 5+i, st.Name)
		setCell(f, summarySheet, 2, 5+i, byStage[st.ID])
	}
	return nil
}

func writeCandidates(f *excelize.File, headerStyle int, proc *domain.Process, cands []domain.Candidate) error {
	stageNames := make(map[string]string, len(proc.Stages))
	for _, st := range proc.Stages {
		stageNames[st.ID] = st.Name
	}

	for col, h := range candidateHeaders {
		setCell(f, candidatesSheet, col+1, 1, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(candidateHeaders), 1)
	if err := f.SetCellStyle(candidatesSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling candidate header: %w", err)
	}
	if err := f.SetColWidth(candidatesSheet, "A", "B", 28); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	for i, c := range cands {
		row := i + 2
		setCell(f, candidatesSheet, 1, row, c.Name)
		setCell(f, candidatesSheet, 2, row, c.Email)
		setCell(f, candidatesSheet, 3, row, c.Phone)
		setCell(f, candidatesSheet, 4, row, stageNames[c.StageID])
		setCell(f, candidatesSheet, 5, row, c.Source)
		setCell(f, candidatesSheet, 6, row, c.SalaryExpectation)
		setCell(f, candidatesSheet, 7, row, c.DNI)
		if c.Province != nil {
			setCell(f, candidatesSheet, 8, row, *c.Province)
		}
		if c.District != nil {
			setCell(f, candidatesSheet, 9, row, *c.District)
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	f.SetCellValue(sheet, name, value)
}
