package model

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvfit/parameter"
)

// Sum adds the outputs of its child models. The child parameter sets become
// subsets, so a child "peak" of a Sum "S" has paths like "S.peak.scale".
type Sum struct {
	set      *parameter.Set
	children []Model
}

// NewSum builds the composite name = children[0] + children[1] + ...
func NewSum(name string, children ...Model) (*Sum, error) {
	subsets := make([]*parameter.Set, len(children))
	for i, c := range children {
		subsets[i] = c.ParameterSet()
	}
	s, err := parameter.NewSet(name, nil, subsets...)
	if err != nil {
		return nil, err
	}

	return &Sum{set: s, children: children}, nil
}

// ParameterSet returns the composite set.
func (m *Sum) ParameterSet() *parameter.Set { return m.set }

// Children returns the child models in order.
func (m *Sum) Children() []Model {
	out := make([]Model, len(m.children))
	copy(out, m.children)

	return out
}

// Eval implements Model.
func (m *Sum) Eval(x []float64) ([]float64, error) {
	total := make([]float64, len(x))
	for _, c := range m.children {
		y, err := c.Eval(x)
		if err != nil {
			return nil, err
		}
		if len(y) != len(total) {
			return nil, fmt.Errorf("%w: %s returned %d values for %d points",
				ErrLengthMismatch, c.ParameterSet().Name(), len(y), len(x))
		}
		floats.Add(total, y)
	}

	return total, nil
}

// Set routes "child.param" settings to the named child.
func (m *Sum) Set(settings map[string]any) error {
	routed := make(map[Model]map[string]any)
	for key, v := range settings {
		child, rest, ok := strings.Cut(key, ".")
		if !ok {
			return fmt.Errorf("%w: %q in %q", parameter.ErrUnknownParameter, key, m.set.Name())
		}
		c := m.child(child)
		if c == nil {
			return fmt.Errorf("%w: %q in %q", parameter.ErrUnknownParameter, key, m.set.Name())
		}
		if routed[c] == nil {
			routed[c] = make(map[string]any)
		}
		routed[c][rest] = v
	}
	for _, c := range m.children {
		if s, ok := routed[c]; ok {
			if err := c.Set(s); err != nil {
				return err
			}
		}
	}

	return nil
}

// Abort forwards to every child that can be aborted.
func (m *Sum) Abort() {
	for _, c := range m.children {
		if a, ok := c.(interface{ Abort() }); ok {
			a.Abort()
		}
	}
}

func (m *Sum) child(name string) Model {
	for _, c := range m.children {
		if c.ParameterSet().Name() == name {
			return c
		}
	}

	return nil
}
