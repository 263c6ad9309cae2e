package problem

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type YAMLProblem struct {
	Name    string             `yaml:"name"`
	Context map[string]float64 `yaml:"context"`
	Fit     YAMLFit            `yaml:"fit"`
	Parts   []YAMLPart         `yaml:"parts"`
}

type YAMLFit struct {
	Method    string  `yaml:"method"`
	MaxEvals  int     `yaml:"max_evals"`
	Starts    int     `yaml:"starts"`
	Seed      *uint64 `yaml:"seed"`
	Tolerance float64 `yaml:"tolerance"`
}

type YAMLPart struct {
	Name       string                   `yaml:"name"`
	Kind       string                   `yaml:"kind"`
	Components []YAMLComponent          `yaml:"components"`
	Weight     *float64                 `yaml:"weight"`
	Fitted     *bool                    `yaml:"fitted"`
	Parameters map[string]YAMLParameter `yaml:"parameters"`
	Data       YAMLData                 `yaml:"data"`
}

type YAMLComponent struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type YAMLData struct {
	File   string    `yaml:"file"`
	X      []float64 `yaml:"x"`
	Y      []float64 `yaml:"y"`
	DX     []float64 `yaml:"dx"`
	DY     []float64 `yaml:"dy"`
	Select []float64 `yaml:"select"`
}

// YAMLParameter accepts a number (fixed), a [lo, hi] pair (fitted), a string
// (computed) or the long form below.
type YAMLParameter struct {
	Value      *float64       `yaml:"value"`
	Range      []float64      `yaml:"range"`
	Expression string         `yaml:"expression"`
	Restraint  *YAMLRestraint `yaml:"restraint"`
}

type YAMLRestraint struct {
	Gaussian *struct {
		Mean  float64 `yaml:"mean"`
		Sigma float64 `yaml:"sigma"`
	} `yaml:"gaussian"`
	Soft *struct {
		Lo    float64 `yaml:"lo"`
		Hi    float64 `yaml:"hi"`
		Sigma float64 `yaml:"sigma"`
	} `yaml:"soft"`
}

// UnmarshalYAML implements yaml.Unmarshaler for the short forms.
func (p *YAMLParameter) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err == nil {
			p.Value = &v
			return nil
		}
		p.Expression = node.Value
		return nil
	case yaml.SequenceNode:
		return node.Decode(&p.Range)
	case yaml.MappingNode:
		type plain YAMLParameter
		return node.Decode((*plain)(p))
	default:
		return fmt.Errorf("line %d: unsupported parameter form", node.Line)
	}
}
