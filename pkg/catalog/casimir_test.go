package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCasimirExponents(t *testing.T) {
	want := []int{1, 2, 4, 7, 8, 10, 11, 12, 13, 14, 16, 17, 18, 19, 20, 22, 23, 24, 26, 28, 29, 30, 32, 34, 36, 38, 40}
	assert.Equal(t, want, CasimirExponents())
	assert.Len(t, searchExponents(), 22)

	assert.True(t, IsCasimirExponent(7))
	assert.True(t, IsCasimirExponent(16))
	assert.False(t, IsCasimirExponent(5))
}

func TestCasimirSearch_FindsAlphaFormula(t *testing.T) {
	got, err := CasimirSearch(CasimirOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, got)

	for i, f := range got {
		assert.Less(t, f.ErrorPPM, DefaultMaxPPM)
		if i > 0 {
			assert.LessOrEqual(t, got[i-1].ErrorPPM, f.ErrorPPM)
		}
	}

	assert.Equal(t, "137 + φ⁻⁷ + φ⁻¹² - φ⁻²⁴ - φ⁻²/248", got[0].Formula)
	assert.Less(t, got[0].ErrorPPM, 0.011)

	var found *CasimirFormula
	for i := range got {
		if got[i].Formula == "137 + φ⁻⁷ + φ⁻¹⁴ + φ⁻¹⁶ - φ⁻⁸/248" {
			found = &got[i]
			break
		}
	}
	require.NotNil(t, found, "catalog alpha formula should be in the search space")
	assert.InDelta(t, 0.0271, found.ErrorPPM, 1e-3)
	assert.Equal(t, 8, found.TorsionExponent)
	assert.Equal(t, []int{7, 14, 16}, found.Exponents)

	alpha, err := Default().Get("alpha_inv")
	require.NoError(t, err)
	assert.InDelta(t, alpha.Eval(), found.Value, 1e-12)
}

func TestCasimirSearch_Options(t *testing.T) {
	limited, err := CasimirSearch(CasimirOptions{Limit: 5})
	require.NoError(t, err)
	assert.Len(t, limited, 5)

	plain, err := CasimirSearch(CasimirOptions{NoTorsion: true, MaxTerms: 3})
	require.NoError(t, err)
	for _, f := range plain {
		assert.Zero(t, f.TorsionExponent)
		assert.LessOrEqual(t, len(f.Exponents), 3)
		assert.GreaterOrEqual(t, len(f.Exponents), 2)
	}

	_, err = CasimirSearch(CasimirOptions{MaxTerms: 1})
	assert.Error(t, err)
}

func TestCombinations(t *testing.T) {
	var got [][]int
	combinations([]int{1, 2, 3, 4}, 2, func(c []int) {
		got = append(got, append([]int(nil), c...))
	})
	assert.Equal(t, [][]int{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}}, got)
}

func TestSignPatterns(t *testing.T) {
	var got [][]int
	signPatterns(2, func(s []int) {
		got = append(got, append([]int(nil), s...))
	})
	assert.Equal(t, [][]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}, got)
}

func TestSuperscript(t *testing.T) {
	assert.Equal(t, "¹⁴", superscript(14))
	assert.Equal(t, "⁻³", superscript(-3))
}
