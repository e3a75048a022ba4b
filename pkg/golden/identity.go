package golden

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

// IdentityTolerance is the absolute tolerance for float64 identity checks.
const IdentityTolerance = 1e-14

// ErrPrecisionTooLow is returned when a big.Float precision below float64's
// 53-bit mantissa is requested.
var ErrPrecisionTooLow = errors.New("precision must be at least 53 bits")

// Identity is one algebraic identity evaluated in float64.
type Identity struct {
	Name     string  `json:"name"`
	LHS      float64 `json:"lhs"`
	RHS      float64 `json:"rhs"`
	Residual float64 `json:"residual"`
	Holds    bool    `json:"holds"`
}

func newIdentity(name string, lhs, rhs float64) Identity {
	res := math.Abs(lhs - rhs)
	return Identity{
		Name:     name,
		LHS:      lhs,
		RHS:      rhs,
		Residual: res,
		Holds:    res < IdentityTolerance,
	}
}

// GSMBound is the CHSH bound 4 - φ that the prism search is expected to reach.
func GSMBound() float64 {
	return 4 - Phi
}

// GammaSquared is (F₇ - L₄·φ)/4 = (13 - 7φ)/4.
func GammaSquared() float64 {
	return (float64(Fibonacci(7)) - float64(LucasInt(4))*Phi) / 4
}

// Identities evaluates the algebraic identities behind the CHSH bound and
// the exact Lucas mass ratios.
func Identities() []Identity {
	sqrt5 := math.Sqrt(5)
	bound := GSMBound()
	return []Identity{
		newIdentity("φ² = φ + 1", Phi*Phi, Phi+1),
		newIdentity("(4-φ)² = 17-7φ", bound*bound, 17-7*Phi),
		newIdentity("16-8φ+φ² = 17-7φ", 16-8*Phi+Phi*Phi, 17-7*Phi),
		newIdentity("(7-√5)/2 = 4-φ", (7-sqrt5)/2, bound),
		newIdentity("2+φ⁻² = 4-φ", 2+Pow(-2), bound),
		newIdentity("L₃-φ = 4-φ", float64(LucasInt(3))-Phi, bound),
		newIdentity("(F₇-L₄φ)/4 = (19-7√5)/8", GammaSquared(), (19-7*sqrt5)/8),
		newIdentity("4+4γ² = 17-7φ", 4+4*GammaSquared(), 17-7*Phi),
		newIdentity("(φ³+φ⁻³)² = 20", Lucas(3)*Lucas(3), 20),
		newIdentity("φ²+φ⁻² = 3", Lucas(2), 3),
		newIdentity("Σλ(H4) = tr C = 8", h4Trace(), 8),
		newIdentity("Πλ(H4) = det C = 5-3φ", h4Product(), H4CartanDeterminant()),
	}
}

func h4Trace() float64 {
	var sum float64
	for _, e := range H4Eigenvalues() {
		sum += e.Value
	}
	return sum
}

func h4Product() float64 {
	prod := 1.0
	for _, e := range H4Eigenvalues() {
		prod *= e.Value
	}
	return prod
}

// =============================================================================
// Arbitrary precision
// =============================================================================

// PreciseIdentity is one identity evaluated at a fixed big.Float precision.
type PreciseIdentity struct {
	Name      string `json:"name"`
	Precision uint   `json:"precision"`
	LHS       string `json:"lhs"`
	RHS       string `json:"rhs"`
	// Residual is |LHS-RHS| rounded to float64.
	Residual float64 `json:"residual"`
	Holds    bool    `json:"holds"`
}

// PhiBig returns φ at the given precision in bits.
func PhiBig(prec uint) *big.Float {
	five := new(big.Float).SetPrec(prec).SetInt64(5)
	root := new(big.Float).SetPrec(prec).Sqrt(five)
	root.Add(root, big.NewFloat(1).SetPrec(prec))
	return root.Quo(root, big.NewFloat(2).SetPrec(prec))
}

// PreciseIdentities evaluates the CHSH identities at prec bits.
// An identity holds when its residual is below 2^-(prec-10).
func PreciseIdentities(prec uint) ([]PreciseIdentity, error) {
	if prec < 53 {
		return nil, fmt.Errorf("%w: got %d", ErrPrecisionTooLow, prec)
	}

	phi := PhiBig(prec)
	num := func(v float64) *big.Float { return new(big.Float).SetPrec(prec).SetFloat64(v) }
	sub := func(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(prec).Sub(a, b) }
	add := func(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(prec).Add(a, b) }
	mul := func(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(prec).Mul(a, b) }
	quo := func(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(prec).Quo(a, b) }

	sqrt5 := new(big.Float).SetPrec(prec).Sqrt(num(5))
	bound := sub(num(4), phi)
	seventeenMinus := sub(num(17), mul(num(7), phi))
	invPhiSq := quo(num(1), mul(phi, phi))

	// Threshold 2^-(prec-10) as a big.Float.
	threshold := new(big.Float).SetPrec(prec).SetMantExp(num(1), -int(prec-10))

	pairs := []struct {
		name     string
		lhs, rhs *big.Float
	}{
		{"φ² = φ + 1", mul(phi, phi), add(phi, num(1))},
		{"(4-φ)² = 17-7φ", mul(bound, bound), seventeenMinus},
		{"(7-√5)/2 = 4-φ", quo(sub(num(7), sqrt5), num(2)), bound},
		{"2+φ⁻² = 4-φ", add(num(2), invPhiSq), bound},
		{"(13-7φ)/4 = (19-7√5)/8", quo(sub(num(13), mul(num(7), phi)), num(4)), quo(sub(num(19), mul(num(7), sqrt5)), num(8))},
	}

	out := make([]PreciseIdentity, 0, len(pairs))
	for _, p := range pairs {
		diff := sub(p.lhs, p.rhs)
		diff.Abs(diff)
		res, _ := diff.Float64()
		out = append(out, PreciseIdentity{
			Name:      p.name,
			Precision: prec,
			LHS:       p.lhs.Text('g', digitsFor(prec)),
			RHS:       p.rhs.Text('g', digitsFor(prec)),
			Residual:  res,
			Holds:     diff.Cmp(threshold) < 0,
		})
	}
	return out, nil
}

// digitsFor converts a precision in bits to a decimal digit count for display.
func digitsFor(prec uint) int {
	return int(float64(prec) * math.Log10(2))
}
