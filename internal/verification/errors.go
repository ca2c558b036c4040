package verification

import "errors"

var (
	// ErrValidation marks a malformed verification request.
	ErrValidation = errors.New("invalid verification request")
)
