package chsh

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateVector is returned when normalizing a vector of (near) zero length.
var ErrDegenerateVector = errors.New("degenerate vector")

// minNorm is the smallest norm Normalize accepts.
const minNorm = 1e-15

// Vec3 is a vector in 3-space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Dot returns the inner product.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Scale multiplies every component by f.
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// Normalize returns v scaled to unit length.
func (v Vec3) Normalize() (Vec3, error) {
	n := v.Norm()
	if math.IsNaN(n) || n < minNorm {
		return Vec3{}, fmt.Errorf("%w: norm %g", ErrDegenerateVector, n)
	}
	return v.Scale(1 / n), nil
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
