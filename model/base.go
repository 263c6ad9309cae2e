package model

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvfit/parameter"
)

// Model is the capability set shared by every model of this package.
type Model interface {
	ParameterSet() *parameter.Set
	Eval(x []float64) ([]float64, error)
	Set(settings map[string]any) error
}

// Base holds a model's parameter set and implements parameter access by name.
type Base struct {
	set *parameter.Set
}

// newBase builds the set name{pars...}.
func newBase(name string, pars ...*parameter.Parameter) (Base, error) {
	s, err := parameter.NewSet(name, pars)
	if err != nil {
		return Base{}, err
	}

	return Base{set: s}, nil
}

// ParameterSet returns the live set.
func (b *Base) ParameterSet() *parameter.Set { return b.set }

// Name is the set name, used as the path prefix inside an assembly.
func (b *Base) Name() string { return b.set.Name() }

// Param returns the named parameter.
func (b *Base) Param(name string) (*parameter.Parameter, error) {
	return b.set.Lookup(name)
}

// Get returns the current value of the named parameter.
func (b *Base) Get(name string) (float64, error) {
	p, err := b.set.Lookup(name)
	if err != nil {
		return 0, err
	}

	return p.Value, nil
}

// SetParam assigns a value without changing the parameter status.
func (b *Base) SetParam(name string, v float64) error {
	p, err := b.set.Lookup(name)
	if err != nil {
		return err
	}
	p.Value = v

	return nil
}

// Set applies settings in ascending name order. It stops at the first
// unknown name or bad setting; earlier settings stay applied.
func (b *Base) Set(settings map[string]any) error {
	names := make([]string, 0, len(settings))
	for k := range settings {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		p, err := b.set.Lookup(name)
		if err != nil {
			return err
		}
		if err = p.Set(settings[name]); err != nil {
			return fmt.Errorf("%s.%s: %w", b.set.Name(), name, err)
		}
	}

	return nil
}

// value reads a parameter known to exist.
func (b *Base) value(name string) float64 {
	p, err := b.set.Lookup(name)
	if err != nil {
		panic(err)
	}

	return p.Value
}
