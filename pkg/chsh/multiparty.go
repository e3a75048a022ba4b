package chsh

import (
	"errors"
	"fmt"
	"math"

	"github.com/leapstack-labs/goldensearch/pkg/golden"
)

// ErrTooFewParties is returned for a party count below an inequality's minimum.
var ErrTooFewParties = errors.New("too few parties")

// Party-count limits and the default table size.
const (
	MinParties           = 2
	MinSvetlichnyParties = 3
	DefaultMaxParties    = 6
)

// GSMSuppression returns (4-φ)/(2√2), the two-party ratio of the golden
// bound to Tsirelson.
func GSMSuppression() float64 {
	return GSMBound() / TsirelsonBound()
}

// Gamma returns γ = √((13-7φ)/4).
func Gamma() float64 {
	return math.Sqrt(golden.GammaSquared())
}

// SuppressionFactor returns η(n) = GSMSuppression^(n/2). η(2) is the
// two-party ratio itself.
func SuppressionFactor(n int) float64 {
	return math.Pow(GSMSuppression(), float64(n)/2)
}

func checkParties(n, minimum int) error {
	if n < minimum {
		return fmt.Errorf("%w: need at least %d, got %d", ErrTooFewParties, minimum, n)
	}
	return nil
}

// ClassicalMerminBound is 2 for CHSH and 2^((n-1)/2) for n ≥ 3.
func ClassicalMerminBound(n int) (float64, error) {
	if err := checkParties(n, MinParties); err != nil {
		return 0, err
	}
	if n == 2 {
		return ClassicalBound, nil
	}
	return math.Pow(2, float64(n-1)/2), nil
}

// QuantumMerminBound is 2√2 for CHSH and 2^(n/2) for n ≥ 3.
func QuantumMerminBound(n int) (float64, error) {
	if err := checkParties(n, MinParties); err != nil {
		return 0, err
	}
	if n == 2 {
		return TsirelsonBound(), nil
	}
	return math.Pow(2, float64(n)/2), nil
}

// GSMMerminBound is 4-φ for CHSH and QuantumMerminBound(n)·η(n) for n ≥ 3.
func GSMMerminBound(n int) (float64, error) {
	q, err := QuantumMerminBound(n)
	if err != nil {
		return 0, err
	}
	if n == 2 {
		return GSMBound(), nil
	}
	return q * SuppressionFactor(n), nil
}

// QuantumSvetlichnyBound is the GHZ maximum 2^((n+1)/2) of the Svetlichny
// inequality.
func QuantumSvetlichnyBound(n int) (float64, error) {
	if err := checkParties(n, MinSvetlichnyParties); err != nil {
		return 0, err
	}
	return math.Pow(2, float64(n+1)/2), nil
}

// GSMSvetlichnyBound applies η(n) to QuantumSvetlichnyBound.
func GSMSvetlichnyBound(n int) (float64, error) {
	q, err := QuantumSvetlichnyBound(n)
	if err != nil {
		return 0, err
	}
	return q * SuppressionFactor(n), nil
}

// PartyBounds is one row of the n-party bounds table. The Svetlichny
// fields are zero for n = 2.
type PartyBounds struct {
	Parties            int     `json:"parties"`
	Classical          float64 `json:"classical"`
	Quantum            float64 `json:"quantum"`
	GSM                float64 `json:"gsm"`
	SuppressionPercent float64 `json:"suppression_percent"`
	SvetlichnyQuantum  float64 `json:"svetlichny_quantum,omitempty"`
	SvetlichnyGSM      float64 `json:"svetlichny_gsm,omitempty"`
}

// AllBounds tabulates the bounds for 2..maxN parties.
func AllBounds(maxN int) ([]PartyBounds, error) {
	if err := checkParties(maxN, MinParties); err != nil {
		return nil, err
	}

	out := make([]PartyBounds, 0, maxN-1)
	for n := MinParties; n <= maxN; n++ {
		// n ≥ 2 here, so the Mermin bounds cannot fail.
		c, _ := ClassicalMerminBound(n)
		q, _ := QuantumMerminBound(n)
		g, _ := GSMMerminBound(n)
		row := PartyBounds{
			Parties:            n,
			Classical:          c,
			Quantum:            q,
			GSM:                g,
			SuppressionPercent: (1 - g/q) * 100,
		}
		if n >= MinSvetlichnyParties {
			row.SvetlichnyQuantum, _ = QuantumSvetlichnyBound(n)
			row.SvetlichnyGSM, _ = GSMSvetlichnyBound(n)
		}
		out = append(out, row)
	}
	return out, nil
}
