// Package golden defines the shared numeric vocabulary of goldensearch.
//
// This package contains:
//   - The golden ratio and its powers (Phi, InvPhi, Pow)
//   - Integer sequences built on it (Lucas, Fibonacci)
//   - The E8/H4 integers reused as formula inputs
//   - Algebraic identity checks, in float64 and at an explicit big.Float precision
//
// The Golden Rule: pkg/golden imports ONLY stdlib.
// Every other package depends on golden, not the reverse.
package golden
