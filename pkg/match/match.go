// Package match finds closed forms near a real number.
//
// Match enumerates a fixed grid of integers, simple fractions, φ-powers,
// Lucas values, π-multiples and sums of two φ-powers, and returns every grid
// point within an absolute tolerance of the input. The ranges are fixed so
// results are comparable across runs.
package match

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/goldensearch/pkg/golden"
)

// Kind identifies the family a candidate form belongs to.
type Kind int

// Candidate kinds, in the order Match scans them.
const (
	KindInteger Kind = iota
	KindFraction
	KindPhiPower
	KindLucas
	KindLucasSquared
	KindPiPower
	KindPhiCompound
)

// String returns the display tag of the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindFraction:
		return "Fraction"
	case KindPhiPower:
		return "φ-power"
	case KindLucas:
		return "Lucas"
	case KindLucasSquared:
		return "Lucas²"
	case KindPiPower:
		return "π-power"
	case KindPhiCompound:
		return "φ-compound"
	default:
		return "unknown"
	}
}

// Kinds lists every candidate kind in scan order.
var Kinds = []Kind{
	KindInteger,
	KindFraction,
	KindPhiPower,
	KindLucas,
	KindLucasSquared,
	KindPiPower,
	KindPhiCompound,
}

// ParseKind returns the kind whose display tag is s.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown candidate kind %q", s)
}

// MarshalText encodes the kind by its display tag.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a display tag written by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Grid bounds. Upper bounds are exclusive.
const (
	fractionMin, fractionMax   = 1, 21
	phiPowerMin, phiPowerMax   = -15, 16
	lucasMax                   = 12
	piCoeffMin, piCoeffMax     = 1, 10
	piExpMin, piExpMax         = 1, 7
	compoundAMin, compoundAMax = -5, 12
	compoundBMin, compoundBMax = -15, 6
)

// Candidate is one closed form within tolerance of the searched value.
type Candidate struct {
	Kind  Kind    `json:"kind"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// String renders the candidate as "kind label".
func (c Candidate) String() string {
	return fmt.Sprintf("%s %s", c.Kind, c.Label)
}

// Match returns every catalog form whose value lies strictly within
// tolerance of x. The result is empty when nothing matches.
func Match(x, tolerance float64) []Candidate {
	var out []Candidate
	near := func(v float64) bool {
		return math.Abs(x-v) < tolerance
	}

	// Nearest integer
	if r := math.Round(x); near(r) {
		out = append(out, Candidate{Kind: KindInteger, Label: fmt.Sprintf("%d", int64(r)), Value: r})
	}

	// n/m over the full grid, equivalent fractions included
	for n := fractionMin; n < fractionMax; n++ {
		for m := fractionMin; m < fractionMax; m++ {
			v := float64(n) / float64(m)
			if near(v) {
				out = append(out, Candidate{Kind: KindFraction, Label: fmt.Sprintf("%d/%d", n, m), Value: v})
			}
		}
	}

	for k := phiPowerMin; k < phiPowerMax; k++ {
		v := golden.Pow(k)
		if near(v) {
			out = append(out, Candidate{Kind: KindPhiPower, Label: fmt.Sprintf("φ^%d", k), Value: v})
		}
	}

	for n := 0; n < lucasMax; n++ {
		l := golden.Lucas(n)
		if near(l) {
			out = append(out, Candidate{Kind: KindLucas, Label: fmt.Sprintf("L_%d", n), Value: l})
		}
		if sq := l * l; near(sq) {
			out = append(out, Candidate{Kind: KindLucasSquared, Label: fmt.Sprintf("L_%d²", n), Value: sq})
		}
	}

	for k := piCoeffMin; k < piCoeffMax; k++ {
		for n := piExpMin; n < piExpMax; n++ {
			v := float64(k) * math.Pow(math.Pi, float64(n))
			if near(v) {
				out = append(out, Candidate{Kind: KindPiPower, Label: fmt.Sprintf("%dπ^%d", k, n), Value: v})
			}
		}
	}

	for a := compoundAMin; a < compoundAMax; a++ {
		for b := compoundBMin; b < compoundBMax; b++ {
			if a == b {
				continue
			}
			v := golden.Pow(a) + golden.Pow(b)
			if near(v) {
				out = append(out, Candidate{Kind: KindPhiCompound, Label: fmt.Sprintf("φ^%d + φ^%d", a, b), Value: v})
			}
		}
	}

	return out
}

// Contains reports whether cands holds a candidate of the given kind and label.
func Contains(cands []Candidate, kind Kind, label string) bool {
	for _, c := range cands {
		if c.Kind == kind && c.Label == label {
			return true
		}
	}
	return false
}

// ByKind filters cands down to one kind.
func ByKind(cands []Candidate, kind Kind) []Candidate {
	var out []Candidate
	for _, c := range cands {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}
