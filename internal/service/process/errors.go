package process

import "errors"

// Sentinel errors for the process service layer.
var (
	ErrNotFound     = errors.New("process not found")
	ErrInvalidInput = errors.New("invalid process input")
)
