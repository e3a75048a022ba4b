// Package catalog holds the table of closed-form predictions for physical
// constants and evaluates them against measured values.
//
// Every formula lives in exactly one place: the Default table or a user file
// loaded with LoadFile.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Sentinel errors.
var (
	ErrDuplicate = errors.New("duplicate constant")
	ErrNotFound  = errors.New("constant not found")
)

// Sector names used by the default table.
const (
	SectorElectromagnetic = "electromagnetic"
	SectorLeptons         = "leptons"
	SectorQuarks          = "quarks"
	SectorCKM             = "ckm"
	SectorCosmology       = "cosmology"
	SectorBell            = "bell"
)

// Constant is one catalog entry.
type Constant struct {
	Name         string         `json:"name"`
	Symbol       string         `json:"symbol"`
	Sector       string         `json:"sector"`
	Formula      string         `json:"formula"`
	Eval         func() float64 `json:"-"`
	Experimental float64        `json:"experimental"`
	Uncertainty  float64        `json:"uncertainty"`
	// Prediction marks entries without a settled measurement. They are
	// evaluated but left out of Summarize.
	Prediction bool `json:"prediction,omitempty"`
}

// Result is a Constant evaluated against its measurement.
type Result struct {
	Constant     Constant `json:"constant"`
	Predicted    float64  `json:"predicted"`
	AbsError     float64  `json:"abs_error"`
	ErrorPPM     float64  `json:"error_ppm"`
	ErrorPercent float64  `json:"error_percent"`
	// Sigma is AbsError in units of the uncertainty, 0 when none is known.
	Sigma float64 `json:"sigma"`
}

// Evaluate computes the Result for a single constant.
func (c Constant) Evaluate() Result {
	p := c.Eval()
	r := Result{
		Constant:  c,
		Predicted: p,
		AbsError:  math.Abs(p - c.Experimental),
	}
	if c.Experimental != 0 {
		rel := r.AbsError / math.Abs(c.Experimental)
		r.ErrorPPM = rel * 1e6
		r.ErrorPercent = rel * 100
	}
	if c.Uncertainty > 0 {
		r.Sigma = r.AbsError / c.Uncertainty
	}
	return r
}

// Catalog is an ordered, name-indexed set of constants.
type Catalog struct {
	constants []Constant
	index     map[string]int
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// Add appends a constant. Names must be unique and Eval must be set.
func (c *Catalog) Add(k Constant) error {
	if k.Name == "" {
		return errors.New("constant name is required")
	}
	if k.Eval == nil {
		return fmt.Errorf("constant %q has no evaluator", k.Name)
	}
	if _, ok := c.index[k.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, k.Name)
	}
	c.index[k.Name] = len(c.constants)
	c.constants = append(c.constants, k)
	return nil
}

// Merge adds every constant of other, stopping at the first error.
func (c *Catalog) Merge(other *Catalog) error {
	for _, k := range other.constants {
		if err := c.Add(k); err != nil {
			return err
		}
	}
	return nil
}

// Get looks a constant up by name.
func (c *Catalog) Get(name string) (Constant, error) {
	i, ok := c.index[name]
	if !ok {
		return Constant{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return c.constants[i], nil
}

// All returns the constants in insertion order.
func (c *Catalog) All() []Constant {
	return slices.Clone(c.constants)
}

// Len returns the number of constants.
func (c *Catalog) Len() int {
	return len(c.constants)
}

// Sectors returns the distinct sectors in first-seen order.
func (c *Catalog) Sectors() []string {
	var out []string
	for _, k := range c.constants {
		if !slices.Contains(out, k.Sector) {
			out = append(out, k.Sector)
		}
	}
	return out
}

// Sector returns a catalog restricted to one sector.
func (c *Catalog) Sector(sector string) *Catalog {
	out := New()
	for _, k := range c.constants {
		if k.Sector == sector {
			_ = out.Add(k)
		}
	}
	return out
}

// Evaluate evaluates every constant in order.
func (c *Catalog) Evaluate() []Result {
	out := make([]Result, 0, len(c.constants))
	for _, k := range c.constants {
		out = append(out, k.Evaluate())
	}
	return out
}

// Summary aggregates percent errors over measured constants.
type Summary struct {
	Count         int     `json:"count"`
	MedianPercent float64 `json:"median_percent"`
	MeanPercent   float64 `json:"mean_percent"`
	// UnderBasisPoint counts errors below 0.01%.
	UnderBasisPoint   int `json:"under_0_01_percent"`
	UnderTenthPercent int `json:"under_0_1_percent"`
	UnderOnePercent   int `json:"under_1_percent"`
}

// Summarize aggregates results, skipping predictions.
func Summarize(results []Result) Summary {
	var errs []float64
	for _, r := range results {
		if r.Constant.Prediction {
			continue
		}
		errs = append(errs, r.ErrorPercent)
	}

	s := Summary{Count: len(errs)}
	if len(errs) == 0 {
		return s
	}

	var sum float64
	for _, e := range errs {
		sum += e
		if e < 0.01 {
			s.UnderBasisPoint++
		}
		if e < 0.1 {
			s.UnderTenthPercent++
		}
		if e < 1 {
			s.UnderOnePercent++
		}
	}
	s.MeanPercent = sum / float64(len(errs))

	slices.Sort(errs)
	mid := len(errs) / 2
	if len(errs)%2 == 1 {
		s.MedianPercent = errs[mid]
	} else {
		s.MedianPercent = (errs[mid-1] + errs[mid]) / 2
	}
	return s
}
