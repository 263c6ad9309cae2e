package parameter

import "errors"

var (
	// ErrUnknownParameter indicates a name or dotted path that does not
	// resolve to a parameter.
	ErrUnknownParameter = errors.New("parameter: unknown parameter")

	// ErrBadSetting indicates a Set call with an unsupported value type.
	ErrBadSetting = errors.New("parameter: unsupported setting")

	// ErrBadRange indicates a range with lo > hi or a NaN bound.
	ErrBadRange = errors.New("parameter: invalid range")

	// ErrEmptyName indicates a parameter or set without a name.
	ErrEmptyName = errors.New("parameter: empty name")

	// ErrDuplicateName indicates two parameters with the same name in one set.
	ErrDuplicateName = errors.New("parameter: duplicate name")
)
