package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/goldensearch/pkg/golden"
)

func TestDefault_Table(t *testing.T) {
	c := Default()
	assert.Equal(t, 17, c.Len())
	assert.Equal(t, []string{
		SectorElectromagnetic, SectorLeptons, SectorQuarks,
		SectorCKM, SectorCosmology, SectorBell,
	}, c.Sectors())

	for _, k := range c.All() {
		assert.NotEmpty(t, k.Symbol, k.Name)
		assert.NotEmpty(t, k.Formula, k.Name)
		assert.Greater(t, k.Uncertainty, 0.0, k.Name)
	}
}

func TestDefault_KnownValues(t *testing.T) {
	c := Default()

	tests := []struct {
		name   string
		want   float64
		delta  float64
		maxPPM float64
	}{
		{name: "alpha_inv", want: 137.035995367294, delta: 1e-9, maxPPM: 0.03},
		{name: "strange_down", want: 20, delta: 1e-12, maxPPM: 1e-6},
		{name: "muon_electron", want: 206.768223883805, delta: 1e-9, maxPPM: 0.3},
		{name: "omega_lambda", want: 0.688888321081, delta: 1e-11, maxPPM: 20},
		{name: "chsh_bound", want: 4 - golden.Phi, delta: 1e-15, maxPPM: 1e5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := c.Get(tt.name)
			require.NoError(t, err)

			r := k.Evaluate()
			assert.InDelta(t, tt.want, r.Predicted, tt.delta)
			assert.Less(t, r.ErrorPPM, tt.maxPPM)
			assert.InDelta(t, r.ErrorPPM/1e4, r.ErrorPercent, 1e-12)
		})
	}
}

func TestCatalog_AddGet(t *testing.T) {
	c := New()
	k := Constant{Name: "two", Symbol: "2", Sector: "test", Eval: func() float64 { return 2 }, Experimental: 2}
	require.NoError(t, c.Add(k))

	err := c.Add(k)
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = c.Get("three")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, c.Add(Constant{Name: "noeval"}))
	assert.Error(t, c.Add(Constant{Eval: func() float64 { return 0 }}))

	got, err := c.Get("two")
	require.NoError(t, err)
	assert.Equal(t, "2", got.Symbol)
}

func TestCatalog_SectorAndMerge(t *testing.T) {
	c := Default()
	quarks := c.Sector(SectorQuarks)
	assert.Equal(t, 5, quarks.Len())
	for _, k := range quarks.All() {
		assert.Equal(t, SectorQuarks, k.Sector)
	}

	merged := New()
	require.NoError(t, merged.Merge(quarks))
	assert.ErrorIs(t, merged.Merge(quarks), ErrDuplicate)
}

func TestConstant_EvaluateSigma(t *testing.T) {
	k := Constant{Name: "x", Eval: func() float64 { return 10.5 }, Experimental: 10, Uncertainty: 0.25}
	r := k.Evaluate()
	assert.InDelta(t, 0.5, r.AbsError, 1e-15)
	assert.InDelta(t, 2.0, r.Sigma, 1e-15)
	assert.InDelta(t, 5.0, r.ErrorPercent, 1e-12)

	zero := Constant{Name: "z", Eval: func() float64 { return 1 }}
	r = zero.Evaluate()
	assert.Equal(t, 0.0, r.ErrorPPM)
	assert.Equal(t, 0.0, r.Sigma)
}

func TestSummarize(t *testing.T) {
	s := Summarize(Default().Evaluate())

	assert.Equal(t, 16, s.Count, "predictions are excluded")
	assert.Equal(t, 7, s.UnderBasisPoint)
	assert.Equal(t, 11, s.UnderTenthPercent)
	assert.Equal(t, 12, s.UnderOnePercent)
	assert.InDelta(t, 0.0318, s.MedianPercent, 1e-3)
	assert.Greater(t, s.MeanPercent, s.MedianPercent)
}

func TestSummarize_Median(t *testing.T) {
	mk := func(pct float64) Result { return Result{ErrorPercent: pct} }

	assert.Equal(t, 2.0, Summarize([]Result{mk(3), mk(1), mk(2)}).MedianPercent)
	assert.Equal(t, 2.5, Summarize([]Result{mk(4), mk(1), mk(2), mk(3)}).MedianPercent)
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestResult_JSON(t *testing.T) {
	k, err := Default().Get("alpha_inv")
	require.NoError(t, err)

	b, err := json.Marshal(k.Evaluate())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"name":"alpha_inv"`)
	assert.NotContains(t, string(b), "Eval")
}
