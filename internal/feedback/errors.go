package feedback

import "errors"

var (
	// ErrValidation wraps every rejected feedback submission.
	ErrValidation = errors.New("invalid feedback data")
)
