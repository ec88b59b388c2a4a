package models

import "errors"

// Custom errors
var (
	ErrInvalidProbability = errors.New("invalid probability")
	ErrInvalidOdds        = errors.New("invalid odds")
	ErrInsufficientData   = errors.New("insufficient data")
	ErrUnsortedInput      = errors.New("unsorted input")
	ErrNotFound           = errors.New("record not found")
)
