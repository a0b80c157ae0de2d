package importer

import "strings"

// TokenizeLine splits one CSV line into fields, honoring double-quote
// enclosure and escaped quotes ("" inside a quoted field becomes a
// literal quote). Commas inside quotes do not separate fields. Fields
// are trimmed of surrounding whitespace after extraction.
//
// Malformed quoting never raises an error: an unterminated quote at
// end-of-line simply absorbs the rest of the line into the last field.
func TokenizeLine(line string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(b.String()))
	return fields
}

// ParseCSV parses full CSV text into raw rows keyed by the header names.
// Blank lines are filtered at the file level before tokenizing. A header
// row is mandatory: fewer than two non-blank lines yields zero records.
// Cells beyond the header width are ignored; missing trailing cells
// default to the empty string.
func ParseCSV(text string) []RawRow {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return nil
	}

	headers := TokenizeLine(lines[0])

	rows := make([]RawRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := TokenizeLine(line)
		row := make(RawRow, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			row[h] = StringValue(cell)
		}
		rows = append(rows, row)
	}
	return rows
}
