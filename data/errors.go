package data

import "errors"

var (
	// ErrLengthMismatch indicates columns of different lengths.
	ErrLengthMismatch = errors.New("data: column lengths differ")

	// ErrEmpty indicates a data set without points.
	ErrEmpty = errors.New("data: no points")

	// ErrBadUncertainty indicates a dy value that is not strictly positive.
	ErrBadUncertainty = errors.New("data: uncertainty must be > 0")

	// ErrBadIndex indicates a selection index outside the data.
	ErrBadIndex = errors.New("data: selection index out of range")

	// ErrColumns indicates a text row with an unsupported column count.
	ErrColumns = errors.New("data: expected 2, 3 or 4 columns")

	// ErrTheoryLength indicates a model returning the wrong number of values.
	ErrTheoryLength = errors.New("data: theory length differs from data length")
)
