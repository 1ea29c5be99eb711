package shape

import "errors"

// Shape errors
var (
	ErrValidation = errors.New("validation error")
	ErrRange      = errors.New("value out of range")
)
