package problem

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvfit/assembly"
)

const (
	opLoad  = "problem.load"
	opParse = "problem.parse"
	opMap   = "problem.map"
)

// Load reads the problem file at path. Data files are resolved relative to
// its directory.
func Load(path string, opts ...assembly.Option) (*Problem, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &OpError{Op: opLoad, Kind: KindNotFound, Path: path, Err: err}
	}

	dto, err := decode(bytes.NewReader(b))
	if err != nil {
		return nil, invalid(opLoad, path, err)
	}

	p, err := Map(filepath.Dir(path), dto, opts...)
	if err != nil {
		return nil, err
	}
	p.Path = path

	return p, nil
}

// Parse reads a problem from r; data files are resolved relative to dir.
func Parse(r io.Reader, dir string, opts ...assembly.Option) (*Problem, error) {
	dto, err := decode(r)
	if err != nil {
		return nil, invalid(opParse, "", err)
	}

	return Map(dir, dto, opts...)
}

// decode rejects unknown keys so that typos do not pass silently.
func decode(r io.Reader) (YAMLProblem, error) {
	var dto YAMLProblem
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil {
		return YAMLProblem{}, err
	}

	return dto, nil
}
