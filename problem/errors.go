package problem

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrInvalidConfig = errors.New("problem: invalid config")
	ErrMissingField  = errors.New("problem: missing field")
)

// Kind is a coarse classification of problem errors.
type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindInvalidConfig Kind = "invalid_config"
	KindExecution     Kind = "execution"
)

// OpError wraps an error with the operation, a Kind and the file involved.
type OpError struct {
	Op   string
	Kind Kind
	Path string // problem or data file, when known
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is an *OpError of the given kind.
func IsKind(err error, kind Kind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

func invalid(op, path string, err error) error {
	return &OpError{Op: op, Kind: KindInvalidConfig, Path: path, Err: err}
}
