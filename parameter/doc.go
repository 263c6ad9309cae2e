// Package parameter defines the named, possibly constrained, model
// parameters shared by a fitting problem and the hierarchical sets that
// hold them.
//
// What:
//
//   - Parameter: a named value register with a status (fixed, fitted or
//     computed), an optional fit Range, an optional constraint Expression and
//     an optional Restraint contributing a likelihood penalty.
//   - Set: a named, ordered collection of parameters plus nested subsets.
//     Every parameter reachable from a root Set has a dotted Path such as
//     "M1.a", assigned by SetPrefix.
//   - FitParameter: a detached (name, range, value) snapshot used to report
//     and apply optimizer results.
//
// Status rules:
//
//   - Set(float64)            -> fixed at that value
//   - Set(Range{lo, hi})      -> fitted within [lo, hi]
//   - Set("2*M1.c")           -> computed from the expression
//
// Parameter values are plain fields. A model and the fitting assembly hold the
// same *Parameter, so a value assigned by the optimizer is the value the model
// reads during its next evaluation.
//
// Errors:
//
//	ErrUnknownParameter - no parameter with the requested name or path.
//	ErrBadSetting       - Set received a value of an unsupported type.
//	ErrBadRange         - range has lo > hi or a NaN bound.
//	ErrEmptyName        - parameter or set created without a name.
//	ErrDuplicateName    - two parameters of one set share a name.
package parameter
