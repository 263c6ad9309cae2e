// Package lvfit fits several models to several datasets at once, with
// parameters shared, tied by algebraic constraints, or held within ranges.
//
// 🚀 What is lvfit?
//
//	A small least-squares fitting core for scattering-style analysis:
//		• Parameters: fixed, fitted within [lo, hi], or computed from an expression
//		• Assembly: weighted Parts (model + data) behind one cost function
//		• Constraints: "2*M1.c" style expressions, dependency-ordered, cycle-checked
//		• Uncertainties: numeric Jacobian, SVD covariance, standard errors
//		• Fitting: simplex, BFGS, L-BFGS, gradient descent; multi-start
//		• Cooperative abort from any goroutine
//
// The subpackages are:
//
//	parameter/  — Parameter, Range, restraints and hierarchical Set
//	depgraph/   — directed graph + topological sort used to order constraints
//	expression/ — constraint compiler (symbol resolution, ordering, evaluation)
//	assembly/   — Fitness, Part, Assembly: Eval, Call, Jacobian, Cov, Stderr
//	model/      — Linear, Exp, PowerLaw, Gauss and the Sum composite
//	data/       — Data1D: columns, selection, residuals, text loader
//	fit/        — Run: drives gonum/optimize over an Assembly; FormatUncertainty
//	problem/    — YAML problem files to ready-to-fit assemblies
//	cmd/lvfit   — command line: fit, check, models, version
//
// Quick example, two exponentials whose rates are tied:
//
//	M1 = a·exp(c·x)          a ∈ [1,3], c ∈ [1,3]
//	M2 = a·exp(c·x)          a ∈ [1,3], c := 2*M1.c
//
//	res, err := fit.Run(ctx, asm)
//	fmt.Println(fit.FormatUncertainty(res.Parameters[0].Value, res.Stderr[0]))
//
//	go install github.com/katalvlaran/lvfit/cmd/lvfit@latest
package lvfit
