// Package problem loads fitting problems from YAML files.
//
// A problem file names the Parts of an assembly, the model kind and data of
// each Part, the parameter settings, and the fit options:
//
//	name: coupled
//	context:
//	  ratio: 2
//	fit:
//	  method: nelder-mead
//	  starts: 4
//	parts:
//	  - name: M1
//	    kind: exp
//	    parameters:
//	      a: [1, 3]                    # fitted within a range
//	      c: {value: 1.2, range: [1, 3]}
//	    data:
//	      file: m1.dat                 # relative to the problem file
//	      select: [0, 0.8]
//	  - name: M2
//	    kind: exp
//	    weight: 0.5
//	    parameters:
//	      a: 2.5                       # fixed
//	      c: "ratio*M1.c"              # computed
//	    data:
//	      x: [0, 0.5, 1]
//	      y: [2.5, 11.2, 50.2]
//
// A parameter may also carry a restraint:
//
//	a: {range: [0, 5], restraint: {gaussian: {mean: 1, sigma: 0.1}}}
//
// Sum models list their components and address parameters as
// "<component>.<parameter>".
//
// Errors are *OpError values classified by Kind.
package problem
