package importer

// Kind tags the dynamic type of a parsed cell value.
type Kind int

const (
	// KindAbsent marks a value that normalized to "not provided" (blank
	// cell, missing column). Absent fields are omitted from the creation
	// payload rather than stored as empty strings.
	KindAbsent Kind = iota
	KindString
	KindNumber
)

// Value is one loosely-typed cell from an import file. Parsed rows carry
// these until the normalizer converts them into a typed creation input;
// they never reach the persistence layer.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
}

// StringValue wraps s as a string-kinded value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// NumberValue wraps f as a number-kinded value.
func NumberValue(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Text renders the value for a string destination field.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return formatNumber(v.Num)
	default:
		return ""
	}
}

// RawRow is one record from a CSV or spreadsheet import file: a mapping
// from column name to cell value.
type RawRow map[string]Value

// ImportResult aggregates the outcome of one import run.
// SuccessCount + FailedCount always equals the number of rows processed.
type ImportResult struct {
	SuccessCount int `json:"success_count"`
	FailedCount  int `json:"failed_count"`
	// Errors holds at most maxDisplayedErrors entries for UI display.
	Errors []string `json:"errors"`
	// TruncatedErrors is how many additional errors were dropped from
	// Errors, for the "...y N más" summary line.
	TruncatedErrors int `json:"truncated_errors"`
}
