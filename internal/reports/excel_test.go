package reports

import (
	"bytes"
	"testing"

	"github.com/talentohq/ats-server/internal/domain"
	"github.com/xuri/excelize/v2"
)

func testData() (*domain.Process, []domain.Candidate) {
	proc := &domain.Process{
		ID:    "proc-1",
		Title: "Backend Engineer",
		Stages: []domain.Stage{
			{ID: "stage-1", Name: "Postulados", Position: 0},
			{ID: "stage-2", Name: "Entrevista", Position: 1},
		},
	}
	prov := "Lima"
	cands := []domain.Candidate{
		{Name: "Ana Ruiz", Email: "ana@test.com", StageID: "stage-1", Province: &prov},
		{Name: "Beto Díaz", Email: "beto@test.com", StageID: "stage-1"},
		{Name: "Carla Soto", Email: "carla@test.com", StageID: "stage-2"},
	}
	return proc, cands
}

func TestBuildProcessReport(t *testing.T) {
	proc, cands := testData()
	b, err := BuildProcessReport(proc, cands)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %v", sheets)
	}

	title, err := f.GetCellValue(summarySheet, "B1")
	if err != nil || title != "Backend Engineer" {
		t.Fatalf("summary title: %q err=%v", title, err)
	}
	total, _ := f.GetCellValue(summarySheet, "B2")
	if total != "3" {
		t.Fatalf("expected total 3, got %q", total)
	}

	// Per-stage counts in stage order.
	stage1Count, _ := f.GetCellValue(summarySheet, "B5")
	if stage1Count != "2" {
		t.Fatalf("expected 2 in Postulados, got %q", stage1Count)
	}
	stage2Count, _ := f.GetCellValue(summarySheet, "B6")
	if stage2Count != "1" {
		t.Fatalf("expected 1 in Entrevista, got %q", stage2Count)
	}

	name, _ := f.GetCellValue(candidatesSheet, "A2")
	if name != "Ana Ruiz" {
		t.Fatalf("expected Ana Ruiz in first data row, got %q", name)
	}
	stageName, _ := f.GetCellValue(candidatesSheet, "D2")
	if stageName != "Postulados" {
		t.Fatalf("expected stage name, got %q", stageName)
	}
	province, _ := f.GetCellValue(candidatesSheet, "H2")
	if province != "Lima" {
		t.Fatalf("expected Lima, got %q", province)
	}
}

func TestBuildProcessReportEmpty(t *testing.T) {
	proc := &domain.Process{ID: "p", Title: "Sin candidatos"}
	b, err := BuildProcessReport(proc, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	total, _ := f.GetCellValue(summarySheet, "B2")
	if total != "0" {
		t.Fatalf("expected 0, got %q", total)
	}
}
