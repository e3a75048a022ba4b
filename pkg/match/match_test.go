package match

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/goldensearch/pkg/golden"
)

func labels(cands []Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.String())
	}
	return out
}

func TestMatch_PhiCubed(t *testing.T) {
	phi3 := golden.Pow(3)

	got := Match(phi3, 1e-9)
	want := []string{"φ-power φ^3", "φ-compound φ^1 + φ^2", "φ-compound φ^2 + φ^1"}
	if diff := cmp.Diff(want, labels(got)); diff != "" {
		t.Errorf("Match(φ³) mismatch (-want +got):\n%s", diff)
	}
}

func TestMatch_StrictTolerance(t *testing.T) {
	const eps = 1e-9
	phi3 := golden.Pow(3)

	t.Run("outside tolerance", func(t *testing.T) {
		assert.Empty(t, Match(phi3+2*eps, eps))
	})

	t.Run("inside tolerance", func(t *testing.T) {
		got := Match(phi3+0.5*eps, eps)
		assert.True(t, Contains(got, KindPhiPower, "φ^3"))
		assert.Len(t, got, 3)
	})
}

func TestMatch_FractionEquivalents(t *testing.T) {
	got := Match(0.75, 1e-9)
	require.True(t, Contains(got, KindFraction, "3/4"))

	fracs := ByKind(got, KindFraction)
	assert.Len(t, fracs, len(got), "only fractions expected")
	for _, f := range fracs {
		assert.Equal(t, 0.75, f.Value, f.Label)
	}

	want := []string{"3/4", "6/8", "9/12", "12/16", "15/20"}
	var gotLabels []string
	for _, f := range fracs {
		gotLabels = append(gotLabels, f.Label)
	}
	assert.Equal(t, want, gotLabels)
}

func TestMatch_Table(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		tol   float64
		kind  Kind
		label string
	}{
		{name: "integer twenty", x: 20, tol: 1e-9, kind: KindInteger, label: "20"},
		{name: "fraction twenty", x: 20, tol: 1e-9, kind: KindFraction, label: "20/1"},
		{name: "lucas squared", x: 20, tol: 1e-9, kind: KindLucasSquared, label: "L_3²"},
		{name: "lucas two", x: 3, tol: 1e-9, kind: KindLucas, label: "L_2"},
		{name: "compound three", x: 3, tol: 1e-9, kind: KindPhiCompound, label: "φ^-2 + φ^2"},
		{name: "golden ratio", x: golden.Phi, tol: 1e-12, kind: KindPhiPower, label: "φ^1"},
		{name: "pi", x: math.Pi, tol: 1e-12, kind: KindPiPower, label: "1π^1"},
		{name: "two pi squared", x: 2 * math.Pi * math.Pi, tol: 1e-9, kind: KindPiPower, label: "2π^2"},
		{name: "negative integer", x: -4, tol: 1e-9, kind: KindInteger, label: "-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.x, tt.tol)
			assert.True(t, Contains(got, tt.kind, tt.label), "got %v", labels(got))
		})
	}
}

func TestMatch_Three(t *testing.T) {
	got := Match(3, 1e-9)
	assert.Len(t, ByKind(got, KindInteger), 1)
	assert.Len(t, ByKind(got, KindFraction), 6)
	assert.Len(t, ByKind(got, KindLucas), 1)
	assert.Len(t, ByKind(got, KindPhiCompound), 2)
	assert.Len(t, got, 10)
}

func TestMatch_AllWithinTolerance(t *testing.T) {
	for _, x := range []float64{0.5, 1, golden.Phi, 7.5, 11.09, 137.036} {
		for _, c := range Match(x, 1e-3) {
			assert.Less(t, math.Abs(c.Value-x), 1e-3, "%s for %v", c, x)
		}
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Integer", KindInteger.String())
	assert.Equal(t, "Lucas²", KindLucasSquared.String())
	assert.Equal(t, "unknown", Kind(99).String())

	b, err := KindPhiCompound.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "φ-compound", string(b))
}

func TestKind_JSONRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			in := Candidate{Kind: k, Label: "x", Value: 0.75}
			data, err := json.Marshal(in)
			require.NoError(t, err)

			var out Candidate
			require.NoError(t, json.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Lucas²")
	require.NoError(t, err)
	assert.Equal(t, KindLucasSquared, k)

	_, err = ParseKind("unknown")
	assert.Error(t, err)

	var c Candidate
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"Decimal","label":"1","value":1}`), &c))
}
