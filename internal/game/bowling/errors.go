package bowling

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure kind. Callers match them with errors.Is.
var (
	// ErrEmptyInput is returned when the roll text has zero length.
	ErrEmptyInput = errors.New("input is empty")

	// ErrMalformedInput is returned when the roll text is not a whitespace-separated
	// list of non-negative integers.
	ErrMalformedInput = errors.New("input is not in a valid format")

	// ErrRollOutOfRange is returned when a roll is negative or exceeds the pin count.
	ErrRollOutOfRange = errors.New("roll is outside the allowed pin range")

	// ErrFrameScoreExceeded is returned when the two balls of a frame knock down
	// more pins than are standing.
	ErrFrameScoreExceeded = errors.New("frame score cannot exceed the pin count")

	// ErrIneligibleBonusRoll is returned when rolls continue past what the final
	// frame earned.
	ErrIneligibleBonusRoll = errors.New("not eligible for bonus rolls")
)

// Kind classifies a bowling failure.
type Kind int

const (
	// KindNone classifies a nil error.
	KindNone Kind = iota
	// KindEmptyInput classifies ErrEmptyInput.
	KindEmptyInput
	// KindMalformedInput classifies ErrMalformedInput.
	KindMalformedInput
	// KindRollOutOfRange classifies ErrRollOutOfRange.
	KindRollOutOfRange
	// KindFrameScoreExceeded classifies ErrFrameScoreExceeded.
	KindFrameScoreExceeded
	// KindIneligibleBonusRoll classifies ErrIneligibleBonusRoll.
	KindIneligibleBonusRoll
	// KindUnknown classifies an error that wraps none of the package sentinels.
	KindUnknown
)

// String returns the kind's name, e.g. "RollOutOfRange".
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindEmptyInput:
		return "EmptyInput"
	case KindMalformedInput:
		return "MalformedInput"
	case KindRollOutOfRange:
		return "RollOutOfRange"
	case KindFrameScoreExceeded:
		return "FrameScoreExceeded"
	case KindIneligibleBonusRoll:
		return "IneligibleBonusRoll"
	default:
		return "Unknown"
	}
}

// KindOf classifies err.
//
// Postcondition: returns KindNone for a nil error and KindUnknown for an error
// that wraps none of the package sentinels.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyInput):
		return KindEmptyInput
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, ErrRollOutOfRange):
		return KindRollOutOfRange
	case errors.Is(err, ErrFrameScoreExceeded):
		return KindFrameScoreExceeded
	case errors.Is(err, ErrIneligibleBonusRoll):
		return KindIneligibleBonusRoll
	default:
		return KindUnknown
	}
}

// RollError reports the roll at which validation failed.
type RollError struct {
	Index int   // zero-based position of the offending roll
	Value int   // pin count of the offending roll, math.MaxInt if it overflowed
	Err   error // one of the package sentinels
}

// Error reports the 1-based roll position, its pin count and the failure.
func (e *RollError) Error() string {
	return fmt.Sprintf("bowling: roll %d (%d pins): %v", e.Index+1, e.Value, e.Err)
}

// Unwrap returns the sentinel so errors.Is matches it.
func (e *RollError) Unwrap() error { return e.Err }
