package model

import (
	"fmt"
	"sort"
)

// constructors maps a model kind to its constructor.
var constructors = map[string]func(name string) (Model, error){
	"linear": func(name string) (Model, error) {
		m, err := NewLinear(name)
		if err != nil {
			return nil, err
		}
		return m, nil
	},
	"exp": func(name string) (Model, error) {
		m, err := NewExp(name)
		if err != nil {
			return nil, err
		}
		return m, nil
	},
	"gauss": func(name string) (Model, error) {
		m, err := NewGauss(name)
		if err != nil {
			return nil, err
		}
		return m, nil
	},
	"powerlaw": func(name string) (Model, error) {
		m, err := NewPowerLaw(name)
		if err != nil {
			return nil, err
		}
		return m, nil
	},
}

// New returns a model of the given kind named name.
func New(kind, name string) (Model, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownKind, kind, Kinds())
	}

	return ctor(name)
}

// Kinds lists the registered model kinds in ascending order.
func Kinds() []string {
	out := make([]string, 0, len(constructors))
	for k := range constructors {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
