package expression

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/katalvlaran/lvfit/depgraph"
	"github.com/katalvlaran/lvfit/parameter"
)

// Evaluator refreshes every computed parameter from the current values of the
// parameters it reads.
type Evaluator func() error

// noop is returned when nothing is computed.
func noop() error { return nil }

// step is one compiled constraint.
type step struct {
	target *parameter.Parameter
	ident  string // flat identifier of target inside env, empty if nothing reads it
	prog   *vm.Program
}

// compiler holds the symbol tables for one BuildEval call.
type compiler struct {
	byPath  map[string]*parameter.Parameter
	symbols Context

	idents  map[string]string // parameter path or context name -> flat identifier
	inputs  map[string]*parameter.Parameter
	env     map[string]any
	nextPar int
	nextCtx int
}

// BuildEval compiles the expressions of the computed parameters among pars.
// pars is normally the flattened root set, so that every referenced parameter
// is resolvable; ctx adds context symbols on top of StandardSymbols.
//
// The returned Evaluator writes into the Value field of the computed
// parameters, in dependency order. When no parameter is computed it is a no-op.
func BuildEval(pars []*parameter.Parameter, ctx Context) (Evaluator, error) {
	// 1. Index parameters and collect the computed ones
	c := &compiler{
		byPath:  make(map[string]*parameter.Parameter, len(pars)),
		symbols: StandardSymbols(ctx),
		idents:  make(map[string]string),
		inputs:  make(map[string]*parameter.Parameter),
		env:     make(map[string]any),
	}
	var computed []*parameter.Parameter
	for _, p := range pars {
		c.byPath[p.Path()] = p
		if p.IsComputed() {
			computed = append(computed, p)
		}
	}
	if len(computed) == 0 {
		return noop, nil
	}

	// 2. Resolve symbols, rewrite sources and record dependency edges
	g := depgraph.NewGraph()
	sources := make(map[string]string, len(computed))
	var errs []error
	for _, p := range computed {
		_ = g.AddVertex(p.Path())
		src, deps, err := c.resolve(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sources[p.Path()] = src
		for _, d := range deps {
			if d.IsComputed() {
				_ = g.AddEdge(d.Path(), p.Path())
			}
		}
	}

	// 3. Compile every rewritten source against the typed environment
	progs := make(map[string]*vm.Program, len(sources))
	for _, p := range computed {
		src, ok := sources[p.Path()]
		if !ok {
			continue
		}
		prog, err := expr.Compile(src, expr.Env(c.env))
		if err != nil {
			errs = append(errs, exprErrorf(p.Path(), p.Expression(), fmt.Errorf("%w: %v", ErrSyntax, err)))
			continue
		}
		progs[p.Path()] = prog
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// 4. Order computed parameters so every input is refreshed before use
	order, err := depgraph.TopologicalSort(g)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCyclicDependency, err)
	}
	steps := make([]step, 0, len(order))
	for _, path := range order {
		steps = append(steps, step{target: c.byPath[path], ident: c.idents[path], prog: progs[path]})
	}

	return c.evaluator(steps), nil
}

// resolve rewrites the expression of p into flat identifiers and returns the
// parameters it reads.
func (c *compiler) resolve(p *parameter.Parameter) (string, []*parameter.Parameter, error) {
	src := p.Expression()
	toks := scanSymbols(src)
	prefix := ""
	if i := strings.LastIndexByte(p.Path(), '.'); i >= 0 {
		prefix = p.Path()[:i+1]
	}

	var (
		deps    []*parameter.Parameter
		unknown []string
	)
	names := make([]string, len(toks))
	for i, t := range toks {
		// absolute path, then sibling
		if q, ok := c.byPath[t.text]; ok {
			names[i] = c.paramIdent(q)
			deps = append(deps, q)
			continue
		}
		if q, ok := c.byPath[prefix+t.text]; ok && prefix != "" {
			names[i] = c.paramIdent(q)
			deps = append(deps, q)
			continue
		}
		if v, ok := c.symbols[t.text]; ok {
			names[i] = c.contextIdent(t.text, v)
			continue
		}
		if _, ok := builtins[t.text]; ok {
			names[i] = t.text
			continue
		}
		unknown = append(unknown, t.text)
	}
	if len(unknown) > 0 {
		return "", nil, exprErrorf(p.Path(), src, fmt.Errorf("%w: %s", ErrUnknownSymbol, strings.Join(unknown, ", ")))
	}
	k := 0
	out := rewrite(src, toks, func(string) string {
		k++
		return names[k-1]
	})

	return out, deps, nil
}

// paramIdent returns the flat identifier of q, allocating one on first use.
func (c *compiler) paramIdent(q *parameter.Parameter) string {
	if id, ok := c.idents[q.Path()]; ok {
		return id
	}
	id := fmt.Sprintf("P%d", c.nextPar)
	c.nextPar++
	c.idents[q.Path()] = id
	c.inputs[id] = q
	c.env[id] = q.Value

	return id
}

// contextIdent returns the flat identifier of a context symbol.
func (c *compiler) contextIdent(name string, v any) string {
	key := "ctx:" + name
	if id, ok := c.idents[key]; ok {
		return id
	}
	id := fmt.Sprintf("C%d", c.nextCtx)
	c.nextCtx++
	c.idents[key] = id
	c.env[id] = v

	return id
}

// evaluator closes over the compiled steps and the shared environment.
func (c *compiler) evaluator(steps []step) Evaluator {
	env, inputs := c.env, c.inputs

	return func() error {
		// 1. Load the current value of every parameter read by an expression
		for id, q := range inputs {
			env[id] = q.Value
		}
		// 2. Evaluate in dependency order, feeding results forward
		for _, s := range steps {
			out, err := expr.Run(s.prog, env)
			if err != nil {
				return exprErrorf(s.target.Path(), s.target.Expression(), err)
			}
			v, err := toFloat(out)
			if err != nil {
				return exprErrorf(s.target.Path(), s.target.Expression(), err)
			}
			s.target.Value = v
			if s.ident != "" {
				env[s.ident] = v
			}
		}

		return nil
	}
}

// toFloat converts an expression result to float64.
func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
}

// Check compiles the constraints among pars and runs them once on detached
// copies, so diagnostics never disturb the live values.
func Check(pars []*parameter.Parameter, ctx Context) error {
	clones := make([]*parameter.Parameter, len(pars))
	for i, p := range pars {
		clones[i] = p.Clone()
	}
	eval, err := BuildEval(clones, ctx)
	if err != nil {
		return err
	}

	return eval()
}
