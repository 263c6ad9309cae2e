package expression

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax indicates an expression that does not parse.
	ErrSyntax = errors.New("expression: syntax error")

	// ErrUnknownSymbol indicates a symbol that is neither a parameter nor a context entry.
	ErrUnknownSymbol = errors.New("expression: unknown symbol")

	// ErrCyclicDependency indicates computed parameters that depend on themselves.
	ErrCyclicDependency = errors.New("expression: cyclic dependency")

	// ErrNotNumeric indicates an expression whose result is not a number.
	ErrNotNumeric = errors.New("expression: result is not numeric")
)

// exprErrorf annotates err with the constrained parameter and its source text.
func exprErrorf(target, src string, err error) error {
	return fmt.Errorf("%s := %s: %w", target, src, err)
}
