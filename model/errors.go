package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain indicates an x value outside the model's domain.
	ErrDomain = errors.New("model: x outside model domain")

	// ErrUnknownKind indicates a catalog lookup for an unregistered model kind.
	ErrUnknownKind = errors.New("model: unknown model kind")

	// ErrLengthMismatch indicates child models returning different lengths.
	ErrLengthMismatch = errors.New("model: child result lengths differ")
)

func domainError(name string, x float64) error {
	return fmt.Errorf("%w: %s at x=%g", ErrDomain, name, x)
}
