package golden

import (
	"math"
	"slices"
)

// H4Exponents are the exponents of the H4 Coxeter group. The Cartan
// eigenvalues are 2 - 2cos(π·m/30) for each exponent m.
var H4Exponents = []int{1, 11, 19, 29}

// H4Cartan returns the Cartan matrix of H4. The single φ-weighted edge
// links the first two simple roots.
func H4Cartan() [4][4]float64 {
	return [4][4]float64{
		{2, -Phi, 0, 0},
		{-Phi, 2, -1, 0},
		{0, -1, 2, -1},
		{0, 0, -1, 2},
	}
}

// H4CartanDeterminant is det(H4Cartan()) = 5 - 3φ.
func H4CartanDeterminant() float64 {
	return 5 - 3*Phi
}

// H4Eigenvalue is one eigenvalue of the H4 Cartan matrix.
type H4Eigenvalue struct {
	Exponent int     `json:"exponent"`
	Value    float64 `json:"value"`
}

// H4Eigenvalues returns the Cartan spectrum in ascending order.
func H4Eigenvalues() []H4Eigenvalue {
	out := make([]H4Eigenvalue, 0, len(H4Exponents))
	for _, m := range H4Exponents {
		out = append(out, H4Eigenvalue{
			Exponent: m,
			Value:    2 - 2*math.Cos(math.Pi*float64(m)/CoxeterNumber),
		})
	}
	slices.SortFunc(out, func(a, b H4Eigenvalue) int {
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		}
		return 0
	})
	return out
}
