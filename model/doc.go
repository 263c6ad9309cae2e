// Package model provides reference theory functions for the fitting
// assembly: a Base carrying the named parameter set, a handful of
// one-dimensional models and a Sum composite.
//
// Every model exposes ParameterSet, Eval and Set, which is what
// assembly.Model requires. Gauss also implements analytic derivatives
// (assembly.DerivModel) and Sum forwards Abort to its children
// (assembly.Aborter).
//
// Set takes loosely typed settings, as parameter.Parameter.Set does:
//
//	m.Set(map[string]any{"a": [2]float64{1, 3}, "c": "2*M1.c", "b": 0.5})
package model
