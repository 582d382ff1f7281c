package errors

import "errors"

var (
	ErrNotFound = errors.New("holiday package not found")

	ErrInvalidID = errors.New("invalid holiday package ID format")
)
