package catalog

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/leapstack-labs/goldensearch/pkg/golden"
)

// Casimir search defaults.
const (
	DefaultAnchor       = 137
	DefaultAlphaInverse = 137.035999084
	DefaultMaxTerms     = 4
	DefaultMaxPPM       = 10.0

	casimirProductMax = 40
	searchExponentMax = 30
)

// CasimirExponents returns the E8 Casimir degrees, their d-1 derivatives
// and the pairwise degree sums up to 40, sorted and deduplicated.
func CasimirExponents() []int {
	set := make(map[int]bool)
	for _, d := range golden.CasimirDegrees {
		set[d] = true
		set[d-1] = true
		for _, d2 := range golden.CasimirDegrees {
			if d+d2 <= casimirProductMax {
				set[d+d2] = true
			}
		}
	}
	out := make([]int, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// IsCasimirExponent reports whether e belongs to CasimirExponents.
func IsCasimirExponent(e int) bool {
	return slices.Contains(CasimirExponents(), e)
}

func searchExponents() []int {
	var out []int
	for _, e := range CasimirExponents() {
		if e >= 1 && e <= searchExponentMax {
			out = append(out, e)
		}
	}
	return out
}

// CasimirOptions configures CasimirSearch. Zero values select the defaults.
type CasimirOptions struct {
	Anchor   float64
	Target   float64
	MaxTerms int
	MaxPPM   float64
	// Limit truncates the sorted result when positive.
	Limit int
	// NoTorsion disables the -φ^-t/248 family.
	NoTorsion bool
}

func (o CasimirOptions) withDefaults() CasimirOptions {
	if o.Anchor == 0 {
		o.Anchor = DefaultAnchor
	}
	if o.Target == 0 {
		o.Target = DefaultAlphaInverse
	}
	if o.MaxTerms == 0 {
		o.MaxTerms = DefaultMaxTerms
	}
	if o.MaxPPM <= 0 {
		o.MaxPPM = DefaultMaxPPM
	}
	return o
}

// CasimirFormula is anchor + Σ sign·φ^-exp, optionally minus φ^-t/248.
type CasimirFormula struct {
	Exponents []int `json:"exponents"`
	Signs     []int `json:"signs"`
	// TorsionExponent is t in the -φ^-t/248 term, 0 when absent.
	TorsionExponent int     `json:"torsion_exponent,omitempty"`
	Value           float64 `json:"value"`
	ErrorPPM        float64 `json:"error_ppm"`
	Formula         string  `json:"formula"`
}

// CasimirSearch enumerates every signed combination of Casimir exponents
// around the anchor and keeps those within MaxPPM of Target.
//
// Plain sums use 2..MaxTerms exponents. The torsion family uses
// 1..MaxTerms-1 exponents plus one torsion exponent.
func CasimirSearch(opts CasimirOptions) ([]CasimirFormula, error) {
	opts = opts.withDefaults()
	exps := searchExponents()
	if opts.MaxTerms < 2 || opts.MaxTerms > len(exps) {
		return nil, fmt.Errorf("max terms must be in [2, %d], got %d", len(exps), opts.MaxTerms)
	}
	if opts.Target == 0 {
		return nil, fmt.Errorf("target must be non-zero")
	}

	pow := make(map[int]float64, len(exps))
	for _, e := range exps {
		pow[e] = golden.PowF(-float64(e))
	}

	var out []CasimirFormula
	consider := func(combo, signs []int, torsion int) {
		v := opts.Anchor
		for i, e := range combo {
			v += float64(signs[i]) * pow[e]
		}
		if torsion > 0 {
			v -= pow[torsion] / golden.E8Dim
		}
		ppm := math.Abs(v-opts.Target) / math.Abs(opts.Target) * 1e6
		if ppm >= opts.MaxPPM {
			return
		}
		f := CasimirFormula{
			Exponents:       slices.Clone(combo),
			Signs:           slices.Clone(signs),
			TorsionExponent: torsion,
			Value:           v,
			ErrorPPM:        ppm,
		}
		f.Formula = formatCasimir(opts.Anchor, f)
		out = append(out, f)
	}

	for k := 2; k <= opts.MaxTerms; k++ {
		combinations(exps, k, func(combo []int) {
			signPatterns(k, func(signs []int) {
				consider(combo, signs, 0)
			})
		})
	}
	if !opts.NoTorsion {
		for k := 1; k < opts.MaxTerms; k++ {
			combinations(exps, k, func(combo []int) {
				for _, t := range exps {
					signPatterns(k, func(signs []int) {
						consider(combo, signs, t)
					})
				}
			})
		}
	}

	slices.SortStableFunc(out, func(a, b CasimirFormula) int {
		if a.ErrorPPM != b.ErrorPPM {
			if a.ErrorPPM < b.ErrorPPM {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Formula, b.Formula)
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// combinations calls fn with every k-subset of items in lexicographic order.
// The slice passed to fn is reused between calls.
func combinations(items []int, k int, fn func([]int)) {
	combo := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			fn(combo)
			return
		}
		for i := start; i <= len(items)-(k-depth); i++ {
			combo[depth] = items[i]
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}

// signPatterns calls fn with all 2^k vectors of ±1, starting from all +1.
func signPatterns(k int, fn func([]int)) {
	signs := make([]int, k)
	for mask := 0; mask < 1<<k; mask++ {
		for i := range signs {
			signs[i] = 1
			if mask&(1<<(k-1-i)) != 0 {
				signs[i] = -1
			}
		}
		fn(signs)
	}
}

func formatCasimir(anchor float64, f CasimirFormula) string {
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(anchor, 'g', -1, 64))
	for i, e := range f.Exponents {
		if f.Signs[i] > 0 {
			b.WriteString(" + ")
		} else {
			b.WriteString(" - ")
		}
		b.WriteString("φ⁻" + superscript(e))
	}
	if f.TorsionExponent > 0 {
		b.WriteString(" - φ⁻" + superscript(f.TorsionExponent) + "/248")
	}
	return b.String()
}

var superDigits = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

func superscript(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		if r == '-' {
			b.WriteRune('⁻')
			continue
		}
		b.WriteRune(superDigits[r-'0'])
	}
	return b.String()
}
