package starlark

import (
	"fmt"

	"go.starlark.net/starlark"
)

// ToFloat converts a Starlark int or float to float64.
func ToFloat(v starlark.Value) (float64, error) {
	switch x := v.(type) {
	case starlark.Float:
		return float64(x), nil
	case starlark.Int:
		f, ok := starlark.AsFloat(x)
		if !ok {
			return 0, fmt.Errorf("int %s out of float range", x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("got %s, want number", v.Type())
	}
}
