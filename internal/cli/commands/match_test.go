package commands

import (
	"strconv"
	"testing"

	"github.com/leapstack-labs/goldensearch/internal/cli/testutil"
	"github.com/leapstack-labs/goldensearch/pkg/catalog"
	"github.com/leapstack-labs/goldensearch/pkg/golden"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCommand_JSON(t *testing.T) {
	out, err := execute(t, NewMatchCommand(), "json", "pow(phi, 3)")
	require.NoError(t, err)

	res := decode[MatchOutput](t, out)
	assert.Equal(t, "pow(phi, 3)", res.Input)
	assert.InDelta(t, 4.23606797749979, res.Value, 1e-12)
	assert.InDelta(t, 1e-9, res.Tolerance, 0)

	var labels []string
	for _, c := range res.Candidates {
		labels = append(labels, c.Label)
	}
	assert.Contains(t, labels, "φ^3")
}

func TestMatchCommand_Markdown(t *testing.T) {
	out, err := execute(t, NewMatchCommand(), "markdown", "0.75")
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Candidates for 0.75")
	assert.Contains(t, out, "| Fraction | 3/4 |")
	assert.Contains(t, out, "| Fraction | 15/20 |")
}

func TestMatchCommand_NoMatch(t *testing.T) {
	out, err := execute(t, NewMatchCommand(), "json", "--tolerance", "1e-12", "1000.123456")
	require.NoError(t, err)

	res := decode[MatchOutput](t, out)
	assert.Empty(t, res.Candidates)
	assert.NotNil(t, res.Candidates, "empty list, not null")
}

func TestMatchCommand_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		errSubstr string
	}{
		{"bad expression", []string{"phi +"}, "invalid value"},
		{"unknown name", []string{"tau"}, "invalid value"},
		{"infinite", []string{"Inf"}, "must be finite"},
		{"zero tolerance", []string{"--tolerance", "0", "1.5"}, "tolerance must be positive"},
		{"missing arg", []string{}, "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, NewMatchCommand(), "json", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestParseValue(t *testing.T) {
	v, err := parseValue(" 2.5 ")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, v, 0)

	v, err = parseValue("lucas(2)")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, v, 1e-12)
}

func TestHuntCommand_Target(t *testing.T) {
	// 3/4 + (7/1)·φ^(-9.75) is an exact fermion seed.
	target := 0.75 + 7*golden.PowF(-9.75)

	out, err := execute(t, NewHuntCommand(), "json", "--limit", "5", strconv.FormatFloat(target, 'g', -1, 64))
	require.NoError(t, err)

	res := decode[HuntOutput](t, out)
	assert.Equal(t, "fermion", res.Spin)
	assert.InDelta(t, 0.01, res.Tolerance, 0)
	require.NotEmpty(t, res.Seeds)
	assert.LessOrEqual(t, len(res.Seeds), 5)
	for i := 1; i < len(res.Seeds); i++ {
		assert.LessOrEqual(t, res.Seeds[i-1].ErrorPPM, res.Seeds[i].ErrorPPM, "seeds sorted by error")
	}
	assert.Less(t, res.Seeds[0].ErrorPPM, 1e-6)
	assert.Equal(t, "3/4", res.Seeds[0].Candidate.Label)
}

func TestHuntCommand_Constant(t *testing.T) {
	out, err := execute(t, NewHuntCommand(), "json", "--constant", "muon_electron", "--spin", "boson", "--limit", "3")
	require.NoError(t, err)

	res := decode[HuntOutput](t, out)
	k, err := catalog.Default().Get("muon_electron")
	require.NoError(t, err)
	assert.InDelta(t, k.Experimental, res.Target, 0)
	assert.Equal(t, "muon_electron", res.Constant)
	assert.Equal(t, "boson", res.Spin)
	assert.LessOrEqual(t, len(res.Seeds), 3)
}

func TestHuntCommand_UserCatalogConstant(t *testing.T) {
	path := testutil.WriteCatalogFile(t, testutil.UserCatalog)

	out, err := execute(t, NewHuntCommand(), "markdown", "--constant", "golden_cube", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# Seeds for golden_cube")
	testutil.AssertValidMarkdown(t, out)
}

func TestHuntCommand_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		errSubstr string
	}{
		{"nothing to hunt", []string{}, "provide either a target value or --constant"},
		{"both target and constant", []string{"--constant", "alpha_inv", "137"}, "provide either"},
		{"bad spin", []string{"--spin", "scalar", "1.5"}, "unknown spin"},
		{"unknown constant", []string{"--constant", "nope"}, "constant not found"},
		{"negative limit", []string{"--limit", "-1", "1.5"}, "limit must not be negative"},
		{"zero tolerance", []string{"--tolerance", "0", "1.5"}, "tolerance must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, NewHuntCommand(), "json", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}
