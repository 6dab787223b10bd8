package service

import "errors"

var (
	// ErrNotFound indicates the leave does not exist.
	ErrNotFound = errors.New("leave not found")
	// ErrValidation indicates missing or malformed input fields.
	ErrValidation = errors.New("invalid leave")
	// ErrInvalidRange indicates an end date before the start date.
	ErrInvalidRange = errors.New("end date is before start date")
)
