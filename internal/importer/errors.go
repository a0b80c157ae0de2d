package importer

import "fmt"

// ConfigurationError means the import target cannot accept candidates;
// it is fatal to the whole run and no rows are processed.
type ConfigurationError struct {
	ProcessID string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("process %s: %s", e.ProcessID, e.Reason)
}

// ParseError means the input file could not be decoded at all; no
// partial result is produced.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s file: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
