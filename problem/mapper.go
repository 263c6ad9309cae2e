package problem

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/katalvlaran/lvfit/assembly"
	"github.com/katalvlaran/lvfit/data"
	"github.com/katalvlaran/lvfit/model"
	"github.com/katalvlaran/lvfit/parameter"
)

// sumKind is the model kind of composite Parts.
const sumKind = "sum"

// Map builds a Problem from its YAML form. dir resolves relative data files.
func Map(dir string, dto YAMLProblem, opts ...assembly.Option) (*Problem, error) {
	if len(dto.Parts) == 0 {
		return nil, invalid(opMap, "", fmt.Errorf("%w: parts", ErrMissingField))
	}

	// Shared constants for the constraint expressions
	if len(dto.Context) > 0 {
		symbols := make(map[string]any, len(dto.Context))
		for k, v := range dto.Context {
			symbols[k] = v
		}
		opts = append(opts[:len(opts):len(opts)], assembly.WithSymbols(symbols))
	}
	a, err := assembly.New(nil, opts...)
	if err != nil {
		return nil, &OpError{Op: opMap, Kind: KindExecution, Err: err}
	}
	p := &Problem{Name: dto.Name, Assembly: a}

	// One Part per entry, in file order
	for i, yp := range dto.Parts {
		field := fmt.Sprintf("parts[%d]", i)
		m, err := mapModel(field, yp)
		if err != nil {
			return nil, invalid(opMap, "", err)
		}
		if err := applyParameters(field, m, yp.Parameters); err != nil {
			return nil, invalid(opMap, "", err)
		}
		d, err := mapData(dir, field, yp.Data)
		if err != nil {
			return nil, err
		}

		var popts []assembly.PartOption
		if yp.Weight != nil {
			popts = append(popts, assembly.WithWeight(*yp.Weight))
		}
		if yp.Fitted != nil {
			popts = append(popts, assembly.WithFitted(*yp.Fitted))
		}
		if err := a.AppendModel(m, d, popts...); err != nil {
			return nil, invalid(opMap, "", fmt.Errorf("%s: %w", field, err))
		}
		p.Data = append(p.Data, d)
	}

	p.Fit = Settings{
		Method:         dto.Fit.Method,
		MaxEvaluations: dto.Fit.MaxEvals,
		Starts:         dto.Fit.Starts,
		Seed:           dto.Fit.Seed,
		Tolerance:      dto.Fit.Tolerance,
	}

	return p, nil
}

func mapModel(field string, yp YAMLPart) (model.Model, error) {
	if yp.Name == "" {
		return nil, fmt.Errorf("%w: %s.name", ErrMissingField, field)
	}
	if yp.Kind == "" {
		return nil, fmt.Errorf("%w: %s.kind", ErrMissingField, field)
	}
	if yp.Kind != sumKind {
		m, err := model.New(yp.Kind, yp.Name)
		if err != nil {
			return nil, fmt.Errorf("%s.kind: %w", field, err)
		}
		return m, nil
	}

	if len(yp.Components) == 0 {
		return nil, fmt.Errorf("%w: %s.components", ErrMissingField, field)
	}
	children := make([]model.Model, len(yp.Components))
	for j, c := range yp.Components {
		m, err := model.New(c.Kind, c.Name)
		if err != nil {
			return nil, fmt.Errorf("%s.components[%d]: %w", field, j, err)
		}
		children[j] = m
	}
	sum, err := model.NewSum(yp.Name, children...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}

	return sum, nil
}

// applyParameters configures parameters in ascending name order.
func applyParameters(field string, m model.Model, pars map[string]YAMLParameter) error {
	names := make([]string, 0, len(pars))
	for name := range pars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		yp := pars[name]
		where := fmt.Sprintf("%s.parameters.%s", field, name)
		p, err := m.ParameterSet().Get(name)
		if err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}

		var setting any
		switch {
		case yp.Expression != "":
			setting = yp.Expression
		case yp.Range != nil:
			setting = yp.Range
		case yp.Value != nil:
			setting = *yp.Value
		}
		if setting != nil {
			if err := m.Set(map[string]any{name: setting}); err != nil {
				return fmt.Errorf("%s: %w", where, err)
			}
		}
		// the long form may give a start value along with the range
		if yp.Range != nil && yp.Value != nil {
			p.Value = *yp.Value
		}

		r, err := mapRestraint(yp.Restraint)
		if err != nil {
			return fmt.Errorf("%s.restraint: %w", where, err)
		}
		if r != nil {
			p.SetRestraint(r)
		}
	}

	return nil
}

func mapRestraint(yr *YAMLRestraint) (parameter.Restraint, error) {
	switch {
	case yr == nil:
		return nil, nil
	case yr.Gaussian != nil && yr.Soft != nil:
		return nil, fmt.Errorf("%w: gaussian and soft are exclusive", ErrInvalidConfig)
	case yr.Gaussian != nil:
		if !(yr.Gaussian.Sigma > 0) {
			return nil, fmt.Errorf("%w: sigma must be positive", ErrInvalidConfig)
		}
		return parameter.Gaussian{Mean: yr.Gaussian.Mean, Sigma: yr.Gaussian.Sigma}, nil
	case yr.Soft != nil:
		if !(yr.Soft.Sigma > 0) || yr.Soft.Lo > yr.Soft.Hi {
			return nil, fmt.Errorf("%w: need lo <= hi and a positive sigma", ErrInvalidConfig)
		}
		return parameter.SoftBounds{Lo: yr.Soft.Lo, Hi: yr.Soft.Hi, Sigma: yr.Soft.Sigma}, nil
	default:
		return nil, fmt.Errorf("%w: gaussian or soft", ErrMissingField)
	}
}

func mapData(dir, field string, yd YAMLData) (*data.Data1D, error) {
	var (
		d    *data.Data1D
		path string
		err  error
	)
	switch {
	case yd.File != "":
		path = yd.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		d, err = data.LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &OpError{Op: opMap, Kind: KindNotFound, Path: path, Err: err}
		}
	case yd.X != nil:
		d, err = data.NewData1D(yd.X, yd.Y, yd.DX, yd.DY)
	default:
		return nil, invalid(opMap, "", fmt.Errorf("%w: %s.data needs file or x/y", ErrMissingField, field))
	}
	if err != nil {
		return nil, invalid(opMap, path, fmt.Errorf("%s.data: %w", field, err))
	}

	if yd.Select != nil {
		if len(yd.Select) != 2 {
			return nil, invalid(opMap, path, fmt.Errorf("%w: %s.data.select needs [lo, hi]", ErrInvalidConfig, field))
		}
		if err := d.SelectRange(yd.Select[0], yd.Select[1]); err != nil {
			return nil, invalid(opMap, path, fmt.Errorf("%s.data.select: %w", field, err))
		}
	}

	return d, nil
}
