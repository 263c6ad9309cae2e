// SPDX-License-Identifier: MIT
package fit

import "errors"

var (
	// ErrUnknownMethod indicates an unsupported minimizer name.
	ErrUnknownMethod = errors.New("fit: unknown method")

	// ErrNoParameters indicates an assembly without fitted parameters.
	ErrNoParameters = errors.New("fit: no fitted parameters")

	// ErrNoResult indicates that no start point produced a finite cost.
	ErrNoResult = errors.New("fit: no start point produced a finite cost")

	// ErrNotConverged indicates that the best start ended in a minimizer
	// failure. Run still returns the Result of the best point.
	ErrNotConverged = errors.New("fit: minimizer did not converge")
)
