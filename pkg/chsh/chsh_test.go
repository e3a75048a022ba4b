package chsh

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/goldensearch/pkg/golden"
)

func TestVec3_Normalize(t *testing.T) {
	v, err := Vec3{X: 3, Y: 4}.Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 0.6, v.X, 1e-15)
	assert.InDelta(t, 0.8, v.Y, 1e-15)
	assert.InDelta(t, 1.0, v.Norm(), 1e-15)

	_, err = Vec3{}.Normalize()
	assert.ErrorIs(t, err, ErrDegenerateVector)

	_, err = Vec3{X: 1e-16}.Normalize()
	assert.ErrorIs(t, err, ErrDegenerateVector)

	_, err = Vec3{X: math.NaN()}.Normalize()
	assert.ErrorIs(t, err, ErrDegenerateVector)
}

func TestPrismVertices_Invariants(t *testing.T) {
	for _, h := range []float64{0, 0.3, GoldenHeight(), 2.5} {
		vs, err := PrismVertices(h)
		require.NoError(t, err)
		require.Len(t, vs, 10)

		for i, v := range vs {
			assert.InDelta(t, 1.0, v.Norm(), 1e-12, "h=%v vertex %d", h, i)
		}
		for k := 0; k < RingSize; k++ {
			up, down := vs[k], vs[RingSize+k]
			assert.Equal(t, up.X, down.X)
			assert.Equal(t, up.Y, down.Y)
			assert.Equal(t, up.Z, -down.Z)
		}
	}

	_, err := PrismVertices(math.Inf(1))
	assert.Error(t, err)
}

func TestGoldenHeight(t *testing.T) {
	h := GoldenHeight()
	assert.InDelta(t, 3/(2*golden.Phi), h*h, 1e-15)
	assert.InDelta(t, 0.9271, h*h, 1e-4)
}

func TestBruteForce_GoldenPrism(t *testing.T) {
	res, err := GoldenPrismSearch(true)
	require.NoError(t, err)

	assert.InDelta(t, 2.3819660112501052, res.MaxScore, 1e-10)
	assert.InDelta(t, 4-golden.Phi, res.MaxScore, 1e-10)
	assert.True(t, res.MatchesTarget)
	assert.Equal(t, 0, res.ExceedingBound)
	assert.Equal(t, 8100, res.Tested)
	assert.Equal(t, 80, res.OptimaCount)
	assert.NotEqual(t, res.Best.A, res.Best.APrime)
	assert.NotEqual(t, res.Best.B, res.Best.BPrime)

	vs, err := PrismVertices(GoldenHeight())
	require.NoError(t, err)
	q := res.Best
	assert.InDelta(t, res.MaxScore, math.Abs(Score(vs[q.A], vs[q.APrime], vs[q.B], vs[q.BPrime])), 1e-15)
}

func TestBruteForce_SelfPairsAllowed(t *testing.T) {
	res, err := GoldenPrismSearch(false)
	require.NoError(t, err)

	assert.Equal(t, 10000, res.Tested)
	assert.InDelta(t, 4-golden.Phi, res.MaxScore, 1e-10)
	assert.Equal(t, 0, res.ExceedingBound)
}

func TestBruteForce_BoundCounting(t *testing.T) {
	vs, err := PrismVertices(0.3)
	require.NoError(t, err)

	res, err := BruteForce(vs, DefaultOptions())
	require.NoError(t, err)
	assert.Greater(t, res.MaxScore, 4-golden.Phi)
	assert.Greater(t, res.ExceedingBound, 0)
	assert.False(t, res.MatchesTarget)
}

func TestBruteForce_TieKeepsLargestScore(t *testing.T) {
	// Scores in scan order are 1.99, 2.21, 2.21, 2.41; all tie within 0.25.
	vs := []Vec3{{X: 1.1}, {X: 1}}

	res, err := BruteForce(vs, Options{ExcludeSelfPairs: true, TieTolerance: 0.25})
	require.NoError(t, err)
	assert.InDelta(t, 2.41, res.MaxScore, 1e-12)
	assert.Equal(t, 4, res.OptimaCount)
	assert.Equal(t, Quadruple{A: 1, APrime: 0, B: 1, BPrime: 0}, res.Best)
}

func TestBruteForce_Errors(t *testing.T) {
	_, err := BruteForce(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoVertices)

	_, err = BruteForce([]Vec3{{Z: 1}}, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoVertices)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	vs, err := PrismVertices(GoldenHeight())
	require.NoError(t, err)
	_, err = BruteForceContext(ctx, vs, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBruteForce_SingleVertexWithSelfPairs(t *testing.T) {
	// a = a' = b = b' gives S = 2|v|².
	res, err := BruteForce([]Vec3{{X: 1}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Tested)
	assert.InDelta(t, 2.0, res.MaxScore, 1e-15)
}

func TestScore(t *testing.T) {
	x, y := Vec3{X: 1}, Vec3{Y: 1}
	assert.Equal(t, 0.0, Score(x, y, x, y))
	assert.Equal(t, 2.0, Score(x, x, x, x))
	assert.Equal(t, 2.0, Score(x, y, y, x))
}
