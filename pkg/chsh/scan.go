package chsh

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Scan defaults.
const (
	DefaultScanMin   = 0.05
	DefaultScanMax   = 3.0
	DefaultScanSteps = 200
	DefaultScanSlack = 1e-6
)

// ScanOptions configures Scan. Zero values select the defaults.
type ScanOptions struct {
	Min     float64
	Max     float64
	Steps   int
	Workers int
	// Slack is the tolerated increase between consecutive maxima.
	Slack  float64
	Target float64
	Logger *slog.Logger
}

func (o ScanOptions) withDefaults() ScanOptions {
	if o.Min == 0 && o.Max == 0 {
		o.Min, o.Max = DefaultScanMin, DefaultScanMax
	}
	if o.Steps == 0 {
		o.Steps = DefaultScanSteps
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Slack <= 0 {
		o.Slack = DefaultScanSlack
	}
	if o.Target == 0 {
		o.Target = GSMBound()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// ScanPoint is the search maximum at one prism height.
type ScanPoint struct {
	Height   float64 `json:"height"`
	MaxScore float64 `json:"max_score"`
}

// ScanResult summarizes a height sweep.
type ScanResult struct {
	Points    []ScanPoint `json:"points"`
	Monotonic bool        `json:"monotonic"`
	// Closest is the grid point whose maximum is nearest Target.
	Closest ScanPoint `json:"closest"`
	// Crossing is the interpolated height where the maximum equals Target,
	// or NaN when the sweep never brackets it. JSON omits it in that case.
	Crossing     float64 `json:"crossing"`
	GoldenHeight float64 `json:"golden_height"`
	Target       float64 `json:"target"`
}

// Bracketed reports whether the sweep found a crossing.
func (r ScanResult) Bracketed() bool {
	return !math.IsNaN(r.Crossing)
}

// MarshalJSON omits crossing when the sweep never brackets the target.
func (r ScanResult) MarshalJSON() ([]byte, error) {
	type plain ScanResult
	out := struct {
		plain
		Crossing *float64 `json:"crossing,omitempty"`
	}{plain: plain(r)}
	if r.Bracketed() {
		c := r.Crossing
		out.Crossing = &c
	}
	return json.Marshal(out)
}

// Scan runs the self-pair-excluded search at Steps evenly spaced heights in
// [Min, Max]. Heights are evaluated concurrently; points are returned in
// height order.
func Scan(ctx context.Context, opts ScanOptions) (ScanResult, error) {
	opts = opts.withDefaults()
	if opts.Steps < 2 {
		return ScanResult{}, fmt.Errorf("scan needs at least 2 steps, got %d", opts.Steps)
	}
	if !(opts.Max > opts.Min) {
		return ScanResult{}, fmt.Errorf("scan range [%g, %g] is empty", opts.Min, opts.Max)
	}

	log := opts.Logger
	log.Debug("starting height scan",
		slog.Float64("min", opts.Min),
		slog.Float64("max", opts.Max),
		slog.Int("steps", opts.Steps),
		slog.Int("workers", opts.Workers))

	step := (opts.Max - opts.Min) / float64(opts.Steps-1)
	points := make([]ScanPoint, opts.Steps)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	searchOpts := Options{ExcludeSelfPairs: true, Target: opts.Target}
	for i := 0; i < opts.Steps; i++ {
		h := opts.Min + float64(i)*step
		g.Go(func() error {
			vertices, err := PrismVertices(h)
			if err != nil {
				return err
			}
			res, err := BruteForceContext(gctx, vertices, searchOpts)
			if err != nil {
				return fmt.Errorf("height %g: %w", h, err)
			}
			points[i] = ScanPoint{Height: h, MaxScore: res.MaxScore}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ScanResult{}, err
	}

	res := ScanResult{
		Points:       points,
		Monotonic:    true,
		Crossing:     math.NaN(),
		GoldenHeight: GoldenHeight(),
		Target:       opts.Target,
	}

	bestDist := math.Inf(1)
	for i, p := range points {
		if d := math.Abs(p.MaxScore - opts.Target); d < bestDist {
			bestDist = d
			res.Closest = p
		}
		if i == 0 {
			continue
		}
		prev := points[i-1]
		if p.MaxScore > prev.MaxScore+opts.Slack {
			res.Monotonic = false
		}
		if math.IsNaN(res.Crossing) && between(opts.Target, prev.MaxScore, p.MaxScore) {
			res.Crossing = interpolate(prev, p, opts.Target)
		}
	}

	log.Debug("height scan complete",
		slog.Bool("monotonic", res.Monotonic),
		slog.Float64("crossing", res.Crossing))

	return res, nil
}

func between(v, a, b float64) bool {
	return (a >= v && v >= b) || (a <= v && v <= b)
}

func interpolate(a, b ScanPoint, target float64) float64 {
	if a.MaxScore == b.MaxScore {
		return a.Height
	}
	t := (target - a.MaxScore) / (b.MaxScore - a.MaxScore)
	return a.Height + t*(b.Height-a.Height)
}
