package problem

import (
	"github.com/katalvlaran/lvfit/assembly"
	"github.com/katalvlaran/lvfit/data"
	"github.com/katalvlaran/lvfit/fit"
)

// Problem is a loaded problem file.
type Problem struct {
	Name string
	Path string // empty for problems parsed from a reader

	Assembly *assembly.Assembly
	// Data holds the dataset of each Part, in Part order.
	Data []*data.Data1D
	Fit  Settings
}

// Settings are the fit options of a problem file. Zero fields leave the
// fit package defaults in place.
type Settings struct {
	Method         string
	MaxEvaluations int
	Starts         int
	Seed           *uint64
	Tolerance      float64
}

// Options converts s into fit options.
func (s Settings) Options() []fit.Option {
	var opts []fit.Option
	if s.Method != "" {
		opts = append(opts, fit.WithMethod(s.Method))
	}
	if s.MaxEvaluations > 0 {
		opts = append(opts, fit.WithMaxEvaluations(s.MaxEvaluations))
	}
	if s.Starts > 0 {
		opts = append(opts, fit.WithStarts(s.Starts))
	}
	if s.Seed != nil {
		opts = append(opts, fit.WithSeed(*s.Seed))
	}
	if s.Tolerance > 0 {
		opts = append(opts, fit.WithTolerance(s.Tolerance))
	}

	return opts
}
