package golden

import "math"

// =============================================================================
// Golden ratio
// =============================================================================

// Phi is the golden ratio (1+√5)/2. It satisfies φ² = φ + 1.
var Phi = (1 + math.Sqrt(5)) / 2

// InvPhi is 1/φ = φ - 1.
var InvPhi = 1 / Phi

// Pow returns φ^k for an integer exponent.
func Pow(k int) float64 {
	return math.Pow(Phi, float64(k))
}

// PowF returns φ^x for a real exponent.
func PowF(x float64) float64 {
	return math.Pow(Phi, x)
}

// Lucas returns the hyperbolic Lucas value φ^n + φ^-n.
// For even n this is the Lucas number L_n; for odd n it is √5·F_n.
// The mass-ratio formulas and the matcher use this form for every n.
func Lucas(n int) float64 {
	return Pow(n) + Pow(-n)
}

// LucasInt returns the n-th Lucas number L_0=2, L_1=1, L_n=L_{n-1}+L_{n-2}.
func LucasInt(n int) int {
	if n < 0 {
		return 0
	}
	a, b := 2, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a
}

// Fibonacci returns the n-th Fibonacci number with F_0=0, F_1=1.
// Negative n returns 0.
func Fibonacci(n int) int {
	if n <= 0 {
		return 0
	}
	a, b := 0, 1
	for i := 1; i < n; i++ {
		a, b = b, a+b
	}
	return b
}

// =============================================================================
// E8 / H4 integers
// =============================================================================

// E8/H4 structure constants used as formula inputs.
const (
	E8Dim         = 248
	E8Rank        = 8
	E8Roots       = 240
	CoxeterNumber = 30
	SO8Dim        = 28
	H4Order       = 14400
)

// CasimirDegrees are the degrees of the eight E8 Casimir invariants.
var CasimirDegrees = []int{2, 8, 12, 14, 18, 20, 24, 30}

// Torsion is the ratio dim(SO(8))/dim(E8) = 28/248.
const Torsion = float64(SO8Dim) / float64(E8Dim)

// =============================================================================
// Comparison helpers
// =============================================================================

// Within reports whether |a-b| < tol.
func Within(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// RelClose reports whether a and b agree to a relative tolerance,
// falling back to an absolute comparison near zero.
func RelClose(a, b, relTol float64) bool {
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return diff == 0
	}
	return diff <= relTol*scale
}
