package candidate

import "errors"

// Sentinel errors for the candidate service layer.
var (
	ErrNotFound      = errors.New("candidate not found")
	ErrStageNotFound = errors.New("stage not found in process")
	ErrInvalidInput  = errors.New("invalid candidate input")
)
