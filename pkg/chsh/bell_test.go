package chsh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounds(t *testing.T) {
	assert.InDelta(t, 2.8284271247461903, TsirelsonBound(), 1e-15)
	assert.InDelta(t, 0.1578, SuppressionRatio(), 1e-4)
	assert.Less(t, ClassicalBound, GSMBound())
	assert.Less(t, GSMBound(), TsirelsonBound())
}

func TestCompare(t *testing.T) {
	got, err := Compare(Experiments())
	require.NoError(t, err)
	require.Len(t, got, 4)

	for _, c := range got[:3] {
		assert.Equal(t, FavoursGSM, c.Favours, c.Experiment.Name)
		assert.Less(t, c.GSMSigma, 1.0, c.Experiment.Name)
	}

	delft := got[2]
	assert.Equal(t, "Delft Combined", delft.Experiment.Name)
	assert.InDelta(t, math.Abs(2.38-GSMBound())/0.14, delft.GSMSigma, 1e-12)
}

func TestWeightedAverage(t *testing.T) {
	exps := []Experiment{
		{Name: "a", S: 2.0, Error: 1},
		{Name: "b", S: 4.0, Error: 1},
	}
	mean, sigma, err := WeightedAverage(exps)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, mean, 1e-15)
	assert.InDelta(t, 1/math.Sqrt2, sigma, 1e-15)

	// The ETH point dominates the full set.
	mean, _, err = WeightedAverage(Experiments())
	require.NoError(t, err)
	assert.InDelta(t, 2.0747, mean, 1e-3)
}

func TestChiSquared(t *testing.T) {
	exps := []Experiment{
		{Name: "a", S: 2.0, Error: 0.5},
		{Name: "b", S: 3.0, Error: 0.5},
	}
	chi2, dof, err := ChiSquared(exps, 2.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, chi2, 1e-12)
	assert.Equal(t, 1, dof)
}

func TestStatistics_BadData(t *testing.T) {
	_, err := Compare(nil)
	assert.Error(t, err)

	_, _, err = WeightedAverage([]Experiment{{Name: "zero", S: 2, Error: 0}})
	assert.Error(t, err)

	_, _, err = ChiSquared([]Experiment{{Name: "neg", S: 2, Error: -1}}, 2)
	assert.Error(t, err)
}
