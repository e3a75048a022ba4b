package catalog

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/goldensearch/internal/starlark"
)

// DefaultUserSector is assigned to file entries without a sector.
const DefaultUserSector = "user"

// File is the on-disk shape of a user formula file.
type File struct {
	Constants []FileConstant `yaml:"constants"`
}

// FileConstant is one user formula. Expr is a Starlark expression.
type FileConstant struct {
	Name         string  `yaml:"name"`
	Symbol       string  `yaml:"symbol"`
	Sector       string  `yaml:"sector"`
	Expr         string  `yaml:"expr"`
	Experimental float64 `yaml:"experimental"`
	Uncertainty  float64 `yaml:"uncertainty"`
	Prediction   bool    `yaml:"prediction"`
}

// LoadFile reads and evaluates a user formula file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML formula data and evaluates each expression once.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	tasks := make([]starlark.EvalTask, 0, len(f.Constants))
	seen := make(map[string]bool, len(f.Constants))
	for i, fc := range f.Constants {
		if fc.Name == "" {
			return nil, fmt.Errorf("constant %d: name is required", i)
		}
		if fc.Expr == "" {
			return nil, fmt.Errorf("constant %q: expr is required", fc.Name)
		}
		if seen[fc.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, fc.Name)
		}
		seen[fc.Name] = true
		tasks = append(tasks, starlark.EvalTask{Name: fc.Name, Expr: fc.Expr})
	}

	exec := starlark.NewParallelExecutor(runtime.NumCPU(), nil)
	results := exec.Execute(tasks)

	var errs []error
	c := New()
	for i, fc := range f.Constants {
		res := results[i]
		if res.Error != nil {
			errs = append(errs, fmt.Errorf("constant %q: %w", fc.Name, res.Error))
			continue
		}
		value := res.Value
		sector := fc.Sector
		if sector == "" {
			sector = DefaultUserSector
		}
		symbol := fc.Symbol
		if symbol == "" {
			symbol = fc.Name
		}
		if err := c.Add(Constant{
			Name:         fc.Name,
			Symbol:       symbol,
			Sector:       sector,
			Formula:      fc.Expr,
			Eval:         func() float64 { return value },
			Experimental: fc.Experimental,
			Uncertainty:  fc.Uncertainty,
			Prediction:   fc.Prediction,
		}); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}
