package parameter

import (
	"fmt"
	"sort"
	"strings"
)

// Set is a named node in a parameter tree: its own parameters, in insertion
// order, plus nested subsets. The root of a fitting problem parents one subset
// per model.
//
// Context holds extra symbols (constants or functions) that constraint
// expressions under this node may reference.
type Set struct {
	Context map[string]any

	name    string
	params  []*Parameter
	subsets []*Set
}

// NewSet builds a set from pars and subsets. Parameter names must be unique
// and non-empty.
func NewSet(name string, pars []*Parameter, subsets ...*Set) (*Set, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	s := &Set{name: name}
	for _, p := range pars {
		if err := s.Append(p); err != nil {
			return nil, err
		}
	}
	for _, sub := range subsets {
		s.AddSubset(sub)
	}

	return s, nil
}

// Name returns the set name. Subset names become path components.
func (s *Set) Name() string { return s.name }

// Rename changes the set name. Paths refresh on the next SetPrefix.
func (s *Set) Rename(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	s.name = name

	return nil
}

// Parameters returns the set's own parameters in insertion order.
func (s *Set) Parameters() []*Parameter {
	out := make([]*Parameter, len(s.params))
	copy(out, s.params)

	return out
}

// Subsets returns the child sets in insertion order.
func (s *Set) Subsets() []*Set {
	out := make([]*Set, len(s.subsets))
	copy(out, s.subsets)

	return out
}

// Append adds p to the set.
func (s *Set) Append(p *Parameter) error {
	if p == nil || p.name == "" {
		return ErrEmptyName
	}
	if strings.Contains(p.name, ".") {
		return fmt.Errorf("%w: %q contains '.'", ErrBadSetting, p.name)
	}
	for _, q := range s.params {
		if q.name == p.name {
			return fmt.Errorf("%w: %q in %q", ErrDuplicateName, p.name, s.name)
		}
	}
	s.params = append(s.params, p)

	return nil
}

// AddSubset appends a child set. Nil is ignored.
func (s *Set) AddSubset(sub *Set) {
	if sub != nil {
		s.subsets = append(s.subsets, sub)
	}
}

// Lookup returns the parameter named name among the set's own parameters.
func (s *Set) Lookup(name string) (*Parameter, error) {
	for _, p := range s.params {
		if p.name == name {
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: %q in %q", ErrUnknownParameter, name, s.name)
}

// Get resolves a dotted path relative to s, e.g. "M1.a" from the root.
func (s *Set) Get(path string) (*Parameter, error) {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		return s.Lookup(path)
	}
	for _, sub := range s.subsets {
		if sub.name == head {
			return sub.Get(rest)
		}
	}

	return nil, fmt.Errorf("%w: %q in %q", ErrUnknownParameter, path, s.name)
}

// SetPrefix assigns every parameter in the tree its dotted path.
// The root calls SetPrefix("") so its own name never appears in paths;
// each subset contributes "<name>." to the paths below it.
// Only paths change; values are untouched.
func (s *Set) SetPrefix(prefix string) {
	for _, p := range s.params {
		p.path = prefix + p.name
	}
	for _, sub := range s.subsets {
		sub.SetPrefix(prefix + sub.name + ".")
	}
}

// Flatten returns every parameter in the tree sorted by path.
func (s *Set) Flatten() []*Parameter {
	var out []*Parameter
	s.collect(&out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].path < out[j].path })

	return out
}

func (s *Set) collect(out *[]*Parameter) {
	*out = append(*out, s.params...)
	for _, sub := range s.subsets {
		sub.collect(out)
	}
}

// Fitted returns the fitted parameters sorted by path.
func (s *Set) Fitted() []*Parameter {
	return s.filter((*Parameter).IsFitted)
}

// Restrained returns the restrained parameters sorted by path.
func (s *Set) Restrained() []*Parameter {
	return s.filter((*Parameter).IsRestrained)
}

// Computed returns the computed parameters sorted by path.
func (s *Set) Computed() []*Parameter {
	return s.filter((*Parameter).IsComputed)
}

func (s *Set) filter(keep func(*Parameter) bool) []*Parameter {
	all := s.Flatten()
	out := all[:0]
	for _, p := range all {
		if keep(p) {
			out = append(out, p)
		}
	}

	return out
}

// GatherContext merges the Context maps of the tree. Deeper sets are read
// first, so a symbol defined nearer the root wins.
func (s *Set) GatherContext() map[string]any {
	ctx := make(map[string]any)
	s.gather(ctx)

	return ctx
}

func (s *Set) gather(ctx map[string]any) {
	for _, sub := range s.subsets {
		sub.gather(ctx)
	}
	for k, v := range s.Context {
		ctx[k] = v
	}
}
