package starlark

import (
	"fmt"
	"math"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/goldensearch/pkg/golden"
)

// Predeclared returns the globals visible to formula expressions:
// phi, pi, e, eps (the 28/248 torsion ratio) and the functions
// sqrt, pow, lucas, fib.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"phi":   starlark.Float(golden.Phi),
		"pi":    starlark.Float(math.Pi),
		"e":     starlark.Float(math.E),
		"eps":   starlark.Float(golden.Torsion),
		"sqrt":  starlark.NewBuiltin("sqrt", builtinSqrt),
		"pow":   starlark.NewBuiltin("pow", builtinPow),
		"lucas": starlark.NewBuiltin("lucas", builtinLucas),
		"fib":   starlark.NewBuiltin("fib", builtinFib),
	}
}

func builtinSqrt(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	f, err := ToFloat(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	if f < 0 {
		return nil, fmt.Errorf("%s: negative argument %g", b.Name(), f)
	}
	return starlark.Float(math.Sqrt(f)), nil
}

func builtinPow(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
		return nil, err
	}
	base, err := ToFloat(x)
	if err != nil {
		return nil, fmt.Errorf("%s: base: %w", b.Name(), err)
	}
	exp, err := ToFloat(y)
	if err != nil {
		return nil, fmt.Errorf("%s: exponent: %w", b.Name(), err)
	}
	return starlark.Float(math.Pow(base, exp)), nil
}

// lucas(n) is the hyperbolic form φ^n + φ^-n, matching golden.Lucas.
func builtinLucas(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	return starlark.Float(golden.Lucas(n)), nil
}

func builtinFib(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	if n > 90 {
		return nil, fmt.Errorf("%s: n=%d overflows", b.Name(), n)
	}
	return starlark.MakeInt(golden.Fibonacci(n)), nil
}
