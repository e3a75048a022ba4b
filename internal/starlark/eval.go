// Package starlark evaluates user formula expressions.
//
// Expressions are plain Starlark expressions over the globals returned by
// Predeclared, for example "137 + pow(phi, -7) + pow(phi, -14)".
package starlark

import (
	"fmt"
	"math"

	"go.starlark.net/starlark"
)

// Evaluator evaluates expressions against a fixed set of globals.
type Evaluator struct {
	globals starlark.StringDict
}

// NewEvaluator creates an evaluator over Predeclared plus any extra globals.
// Extra globals take precedence.
func NewEvaluator(extra starlark.StringDict) *Evaluator {
	globals := Predeclared()
	for k, v := range extra {
		globals[k] = v
	}
	globals.Freeze()
	return &Evaluator{globals: globals}
}

// Globals returns the evaluator's frozen globals.
func (e *Evaluator) Globals() starlark.StringDict {
	return e.globals
}

// EvalExpr evaluates a single expression. name labels the expression in
// errors.
func (e *Evaluator) EvalExpr(name, expr string) (starlark.Value, error) {
	thread := newThread(name)
	result, err := starlark.Eval(thread, name, expr, e.globals) //nolint:staticcheck // SA1019: will migrate to EvalOptions later
	if err != nil {
		return nil, &EvalError{Name: name, Expr: expr, Message: err.Error()}
	}
	return result, nil
}

// EvalFloat evaluates expr and requires a finite numeric result.
func (e *Evaluator) EvalFloat(name, expr string) (float64, error) {
	v, err := e.EvalExpr(name, expr)
	if err != nil {
		return 0, err
	}
	return finite(name, expr, v)
}

func finite(name, expr string, v starlark.Value) (float64, error) {
	f, err := ToFloat(v)
	if err != nil {
		return 0, &EvalError{Name: name, Expr: expr, Message: err.Error()}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &EvalError{Name: name, Expr: expr, Message: fmt.Sprintf("non-finite result %v", f)}
	}
	return f, nil
}

func newThread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, _ string) {
			// Formulas should not print
		},
	}
}

// EvalError represents an error during expression evaluation.
type EvalError struct {
	Name    string
	Expr    string
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: error evaluating %q: %s", e.Name, e.Expr, e.Message)
}
