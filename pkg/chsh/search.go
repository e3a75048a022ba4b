package chsh

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/leapstack-labs/goldensearch/pkg/golden"
)

// ErrNoVertices is returned when the search is given an empty vertex set.
var ErrNoVertices = errors.New("no vertices")

// Search defaults.
const (
	DefaultTieTolerance   = 1e-12
	DefaultMatchTolerance = 1e-10
)

// Quadruple holds the vertex indices of one CHSH setting.
type Quadruple struct {
	A      int `json:"a"`
	APrime int `json:"a_prime"`
	B      int `json:"b"`
	BPrime int `json:"b_prime"`
}

func (q Quadruple) String() string {
	return fmt.Sprintf("(a=%d, a'=%d, b=%d, b'=%d)", q.A, q.APrime, q.B, q.BPrime)
}

// Score returns -a·b + a·b' + a'·b + a'·b'.
func Score(a, aPrime, b, bPrime Vec3) float64 {
	return -a.Dot(b) + a.Dot(bPrime) + aPrime.Dot(b) + aPrime.Dot(bPrime)
}

// Options configures BruteForce. Zero values select the defaults.
type Options struct {
	// ExcludeSelfPairs skips quadruples with a == a' or b == b'.
	ExcludeSelfPairs bool
	// Bound is the claimed upper bound; defaults to 4-φ.
	Bound float64
	// Target is the expected maximum; defaults to 4-φ.
	Target float64
	// TieTolerance decides when two scores tie for the maximum. A tie that
	// is still larger raises MaxScore without resetting OptimaCount.
	TieTolerance float64
	// MatchTolerance decides whether the maximum equals Target.
	MatchTolerance float64
}

// DefaultOptions returns the certificate configuration: self-pairs
// excluded and the 4-φ bound.
func DefaultOptions() Options {
	return Options{ExcludeSelfPairs: true}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.Bound == 0 {
		o.Bound = GSMBound()
	}
	if o.Target == 0 {
		o.Target = GSMBound()
	}
	if o.TieTolerance <= 0 {
		o.TieTolerance = DefaultTieTolerance
	}
	if o.MatchTolerance <= 0 {
		o.MatchTolerance = DefaultMatchTolerance
	}
	return o
}

// SearchResult is the certificate produced by BruteForce.
type SearchResult struct {
	MaxScore       float64   `json:"max_score"`
	Best           Quadruple `json:"best"`
	MatchesTarget  bool      `json:"matches_target"`
	OptimaCount    int       `json:"optima_count"`
	ExceedingBound int       `json:"exceeding_bound"`
	Tested         int       `json:"tested"`
	Target         float64   `json:"target"`
	Bound          float64   `json:"bound"`
}

// BruteForce evaluates every index quadruple over vertices.
func BruteForce(vertices []Vec3, opts Options) (SearchResult, error) {
	return BruteForceContext(context.Background(), vertices, opts)
}

// BruteForceContext is BruteForce with cancellation, checked once per
// outer index.
func BruteForceContext(ctx context.Context, vertices []Vec3, opts Options) (SearchResult, error) {
	if len(vertices) == 0 {
		return SearchResult{}, ErrNoVertices
	}
	opts = opts.withDefaults()

	res := SearchResult{
		MaxScore: math.Inf(-1),
		Target:   opts.Target,
		Bound:    opts.Bound,
	}
	n := len(vertices)

	for ia := 0; ia < n; ia++ {
		if err := ctx.Err(); err != nil {
			return SearchResult{}, fmt.Errorf("brute force interrupted: %w", err)
		}
		for iap := 0; iap < n; iap++ {
			if opts.ExcludeSelfPairs && ia == iap {
				continue
			}
			for ib := 0; ib < n; ib++ {
				for ibp := 0; ibp < n; ibp++ {
					if opts.ExcludeSelfPairs && ib == ibp {
						continue
					}
					s := math.Abs(Score(vertices[ia], vertices[iap], vertices[ib], vertices[ibp]))
					res.Tested++

					switch {
					case s > res.MaxScore+opts.TieTolerance:
						res.MaxScore = s
						res.Best = Quadruple{A: ia, APrime: iap, B: ib, BPrime: ibp}
						res.OptimaCount = 1
					case math.Abs(s-res.MaxScore) <= opts.TieTolerance:
						res.OptimaCount++
						if s > res.MaxScore {
							res.MaxScore = s
							res.Best = Quadruple{A: ia, APrime: iap, B: ib, BPrime: ibp}
						}
					}

					if s > opts.Bound+opts.TieTolerance {
						res.ExceedingBound++
					}
				}
			}
		}
	}

	if res.Tested == 0 {
		// A single vertex with self-pairs excluded leaves nothing to score.
		return SearchResult{}, fmt.Errorf("%w: %d vertex set has no distinct pairs", ErrNoVertices, n)
	}

	res.MatchesTarget = math.Abs(res.MaxScore-res.Target) <= opts.MatchTolerance
	return res, nil
}

// GoldenPrismSearch runs the certificate search on the golden-height prism.
func GoldenPrismSearch(excludeSelfPairs bool) (SearchResult, error) {
	vertices, err := PrismVertices(GoldenHeight())
	if err != nil {
		return SearchResult{}, err
	}
	opts := DefaultOptions()
	opts.ExcludeSelfPairs = excludeSelfPairs
	return BruteForce(vertices, opts)
}

// GSMBound returns the golden bound 4-φ.
func GSMBound() float64 {
	return golden.GSMBound()
}
