// Package expression compiles the algebraic constraints attached to computed
// parameters into a single evaluator that refreshes them in dependency order.
//
// A constraint is a plain infix expression such as "2*M1.c" or
// "sqrt(M1.radius**2 + thickness**2)". Symbols are resolved, in order, as:
//
//  1. the absolute dotted path of a parameter ("M1.c");
//  2. a sibling of the constrained parameter, i.e. a parameter with the same
//     path prefix ("thickness" inside M2 means "M2.thickness");
//  3. a context symbol: the caller's Context merged over StandardSymbols.
//
// Every resolved symbol is rewritten to a flat identifier (P0, P1, ... for
// parameters, C0, C1, ... for context symbols) and each expression is compiled
// once with github.com/expr-lang/expr. The built-ins abs, min, max, floor,
// ceil and round are available without a context entry.
//
// Computed parameters are ordered with depgraph.TopologicalSort; a constraint
// that (transitively) reads itself is reported as ErrCyclicDependency with the
// cycle spelled out. Syntax errors and unknown symbols across all expressions
// are reported together in one joined error.
package expression
