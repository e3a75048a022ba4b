package match

import (
	"fmt"
	"math"
	"sort"

	"github.com/leapstack-labs/goldensearch/pkg/golden"
)

// Spin selects the quarter-exponent shift used by the T-correction grid.
type Spin float64

// Spin values.
const (
	Fermion Spin = 0.25
	Boson   Spin = -0.25
)

// String returns "fermion" or "boson".
func (s Spin) String() string {
	if s > 0 {
		return "fermion"
	}
	return "boson"
}

// ParseSpin converts "fermion"/"boson" (or "+"/"-") to a Spin.
func ParseSpin(s string) (Spin, error) {
	switch s {
	case "fermion", "f", "+":
		return Fermion, nil
	case "boson", "b", "-":
		return Boson, nil
	default:
		return 0, fmt.Errorf("unknown spin %q (want fermion or boson)", s)
	}
}

// Correction grid: coefficient 7/k, exponent -n ± spin.
const (
	correctionNumerator = 7
	correctionKMax      = 5
	correctionNMax      = 50
)

// DefaultHuntTolerance is the matcher tolerance applied to stripped seeds.
const DefaultHuntTolerance = 0.01

// Correction is one signed term ±(7/k)·φ^(exponent).
type Correction struct {
	Sign     int     `json:"sign"`
	K        int     `json:"k"`
	N        int     `json:"n"`
	Exponent float64 `json:"exponent"`
	Value    float64 `json:"value"`
	Formula  string  `json:"formula"`
}

// Corrections enumerates the full T-correction grid for a spin:
// k in [1,5], n in [0,50], exponents -n+spin and -n-spin, both signs.
func Corrections(spin Spin) []Correction {
	s := float64(spin)
	out := make([]Correction, 0, correctionKMax*(correctionNMax+1)*4)
	for k := 1; k <= correctionKMax; k++ {
		coeff := float64(correctionNumerator) / float64(k)
		for n := 0; n <= correctionNMax; n++ {
			for _, exp := range []float64{-float64(n) + s, -float64(n) - s} {
				v := coeff * golden.PowF(exp)
				out = append(out,
					newCorrection(1, k, n, exp, v),
					newCorrection(-1, k, n, exp, -v),
				)
			}
		}
	}
	return out
}

func newCorrection(sign, k, n int, exp, v float64) Correction {
	sym := "+"
	if sign < 0 {
		sym = "-"
	}
	return Correction{
		Sign:     sign,
		K:        k,
		N:        n,
		Exponent: exp,
		Value:    v,
		Formula:  fmt.Sprintf("%s(%d/%d)·φ^(%g)", sym, correctionNumerator, k, exp),
	}
}

// Seed is a closed form plus one correction that reconstructs a target.
type Seed struct {
	Omega         float64    `json:"omega"`
	Candidate     Candidate  `json:"candidate"`
	Correction    Correction `json:"correction"`
	Reconstructed float64    `json:"reconstructed"`
	ErrorPPM      float64    `json:"error_ppm"`
}

// Formula renders the seed as "candidate correction".
func (s Seed) Formula() string {
	return fmt.Sprintf("%s %s", s.Candidate.Label, s.Correction.Formula)
}

// HuntOptions tunes Hunt.
type HuntOptions struct {
	// Tolerance for matching the stripped value; DefaultHuntTolerance if zero.
	Tolerance float64
	// Limit truncates the sorted result when positive.
	Limit int
}

// Hunt strips every correction from target, matches what remains against
// the candidate catalog, and ranks the reconstructions by error in ppm.
//
// The reconstruction uses the matched closed form rather than the stripped
// remainder, so the error measures how far the seed really is from target.
func Hunt(target float64, spin Spin, opts HuntOptions) []Seed {
	tol := opts.Tolerance
	if tol <= 0 {
		tol = DefaultHuntTolerance
	}

	scale := math.Abs(target)
	if scale == 0 {
		scale = 1
	}

	var seeds []Seed
	for _, corr := range Corrections(spin) {
		omega := target - corr.Value
		for _, cand := range Match(omega, tol) {
			rec := cand.Value + corr.Value
			seeds = append(seeds, Seed{
				Omega:         omega,
				Candidate:     cand,
				Correction:    corr,
				Reconstructed: rec,
				ErrorPPM:      math.Abs(rec-target) / scale * 1e6,
			})
		}
	}

	sort.SliceStable(seeds, func(i, j int) bool {
		a, b := seeds[i], seeds[j]
		if a.ErrorPPM != b.ErrorPPM {
			return a.ErrorPPM < b.ErrorPPM
		}
		if a.Candidate.Kind != b.Candidate.Kind {
			return a.Candidate.Kind < b.Candidate.Kind
		}
		// Shorter labels first so 3/4 ranks ahead of 6/8.
		if len(a.Candidate.Label) != len(b.Candidate.Label) {
			return len(a.Candidate.Label) < len(b.Candidate.Label)
		}
		if a.Candidate.Label != b.Candidate.Label {
			return a.Candidate.Label < b.Candidate.Label
		}
		return a.Correction.Formula < b.Correction.Formula
	})

	if opts.Limit > 0 && len(seeds) > opts.Limit {
		seeds = seeds[:opts.Limit]
	}
	return seeds
}
