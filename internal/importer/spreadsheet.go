package importer

import (
	"bytes"
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseSpreadsheet decodes workbook bytes into raw rows using the first
// sheet. The first row is the header; missing trailing cells default to
// the empty string. Rows whose cells are all blank are skipped, so error
// row numbers on this path count only non-blank rows (the CSV path has
// its own blank-line convention).
func ParseSpreadsheet(b []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, &ParseError{Format: "xlsx", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Format: "xlsx", Err: errors.New("workbook has no sheets")}
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Format: "xlsx", Err: err}
	}
	if len(cells) < 2 {
		return nil, nil
	}

	headers := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []RawRow
	for _, rec := range cells[1:] {
		if allBlank(rec) {
			continue
		}
		row := make(RawRow, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			cell := ""
			if i < len(rec) {
				cell = rec[i]
			}
			row[h] = StringValue(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
