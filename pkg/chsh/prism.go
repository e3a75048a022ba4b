package chsh

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/goldensearch/pkg/golden"
)

// RingSize is the number of vertices on each ring of the prism.
const RingSize = 5

// GoldenHeight returns √(3/(2φ)), the prism height at which the search
// maximum equals 4-φ.
func GoldenHeight() float64 {
	return math.Sqrt(3 / (2 * golden.Phi))
}

// PrismVertices returns the 10 unit vectors of a pentagonal prism of the
// given half-height. Index k in [0,5) is the upper ring at angle 2πk/5,
// index 5+k is the matching lower vertex.
func PrismVertices(height float64) ([]Vec3, error) {
	if math.IsNaN(height) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("invalid prism height %v", height)
	}

	out := make([]Vec3, 2*RingSize)
	for k := 0; k < RingSize; k++ {
		theta := 2 * math.Pi * float64(k) / RingSize
		c, s := math.Cos(theta), math.Sin(theta)

		up, err := Vec3{X: c, Y: s, Z: height}.Normalize()
		if err != nil {
			return nil, fmt.Errorf("upper vertex %d: %w", k, err)
		}
		down, err := Vec3{X: c, Y: s, Z: -height}.Normalize()
		if err != nil {
			return nil, fmt.Errorf("lower vertex %d: %w", k, err)
		}
		out[k] = up
		out[RingSize+k] = down
	}
	return out, nil
}
