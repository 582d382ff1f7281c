package errors

import "errors"

var (
	ErrNotFound = errors.New("price period not found")

	ErrInvalidID = errors.New("invalid price period ID format")

	ErrOverlap = errors.New("price period overlaps an existing period for the room type")
)
