package physics

import "errors"

var (
	// ErrUndefinedSlope is returned for lines whose x-extent rounds to zero.
	ErrUndefinedSlope = errors.New("undefined slope: vertical line")

	ErrInvalidMass = errors.New("mass must be positive and finite")
	ErrInvalidSize = errors.New("size must be positive and finite")
)
