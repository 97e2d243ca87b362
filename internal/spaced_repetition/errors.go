package spaced_repetition

import "errors"

var (
	// ErrInvalidQuality is returned when a review rating is outside [0,5].
	ErrInvalidQuality = errors.New("spaced repetition: quality out of range")

	// ErrUnknownEngine is returned by ForEngine for an unrecognized name.
	ErrUnknownEngine = errors.New("spaced repetition: unknown engine")
)
