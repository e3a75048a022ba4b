package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/goldensearch/internal/cli/output"
	"github.com/leapstack-labs/goldensearch/internal/state"
	"github.com/leapstack-labs/goldensearch/pkg/catalog"
	"github.com/spf13/cobra"
)

// VerifyOptions holds options for the verify command.
type VerifyOptions struct {
	Sector  string
	Catalog string
	Save    bool
}

// VerifyOutput is the JSON shape of a verify run.
type VerifyOutput struct {
	RunID   string           `json:"run_id,omitempty"`
	Sector  string           `json:"sector,omitempty"`
	Results []catalog.Result `json:"results"`
	Summary catalog.Summary  `json:"summary"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	opts := &VerifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Evaluate the formula catalog against measured values",
		Long: `Evaluate every formula in the catalog and compare it with the
experimental value: absolute error, ppm, percent and σ.

A formula file (--catalog or the catalog_file config key) adds constants
written as expressions over phi, pi, sqrt, pow, lucas and fib. With --save
the run and its results are recorded in the state database.`,
		Example: `  # Whole catalog
  goldensearch verify

  # One sector, recorded for later comparison
  goldensearch verify --sector quarks --save

  # Extra formulas from a file
  goldensearch verify --catalog formulas.yaml -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Sector, "sector", "", "Only evaluate one sector")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Formula file to add to the catalog")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Record the run in the state database")

	return cmd
}

func runVerify(cmd *cobra.Command, args []string, opts *VerifyOptions) (err error) {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	cat, err := cmdCtx.LoadCatalog(opts.Catalog)
	if err != nil {
		return err
	}
	if opts.Sector != "" {
		sub := cat.Sector(opts.Sector)
		if sub.Len() == 0 {
			return fmt.Errorf("%w: no sector %q (available: %s)",
				catalog.ErrNotFound, opts.Sector, strings.Join(cat.Sectors(), ", "))
		}
		cat = sub
	}

	results := cat.Evaluate()
	out := VerifyOutput{
		Sector:  opts.Sector,
		Results: results,
		Summary: catalog.Summarize(results),
	}

	if opts.Save {
		runID, saveErr := saveVerifyRun(cmdCtx, verifyArgs(cmd, args), results)
		if saveErr != nil {
			return saveErr
		}
		out.RunID = runID
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	default:
		renderVerify(r, cat, out)
		return nil
	}
}

// verifyArgs reconstructs the flags that were set, for the run record.
func verifyArgs(cmd *cobra.Command, args []string) string {
	var parts []string
	for _, name := range []string{"sector", "catalog"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			parts = append(parts, "--"+name+"="+f.Value.String())
		}
	}
	parts = append(parts, args...)
	return strings.Join(parts, " ")
}

func saveVerifyRun(cmdCtx *CommandContext, args string, results []catalog.Result) (runID string, err error) {
	store, cleanup, err := cmdCtx.OpenStore()
	if err != nil {
		return "", err
	}
	defer cleanup()

	run, err := store.CreateRun("verify", args)
	if err != nil {
		return "", err
	}
	defer func() {
		status, msg := state.RunStatusCompleted, ""
		if err != nil {
			status, msg = state.RunStatusFailed, err.Error()
		}
		if cerr := store.CompleteRun(run.ID, status, msg); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	rows := make([]state.ResultRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, state.ResultRow{
			Name:         res.Constant.Name,
			Predicted:    res.Predicted,
			Experimental: res.Constant.Experimental,
			ErrorPPM:     res.ErrorPPM,
			Sigma:        res.Sigma,
		})
	}
	if err := store.SaveResults(run.ID, rows); err != nil {
		return "", err
	}

	cmdCtx.Logger.Debug("verify run saved", "run_id", run.ID, "results", len(rows))
	return run.ID, nil
}

func renderVerify(r *output.Renderer, cat *catalog.Catalog, out VerifyOutput) {
	r.Header(1, fmt.Sprintf("Catalog Verification (%d constants)", len(out.Results)))

	for _, sector := range cat.Sectors() {
		var rows [][]string
		for _, res := range out.Results {
			if res.Constant.Sector != sector {
				continue
			}
			name := res.Constant.Symbol
			if res.Constant.Prediction {
				name += " (prediction)"
			}
			sigma := "-"
			if res.Sigma > 0 {
				sigma = strconv.FormatFloat(res.Sigma, 'f', 2, 64)
			}
			rows = append(rows, []string{
				name,
				formatFloat(res.Predicted),
				formatFloat(res.Constant.Experimental),
				formatPercent(res.ErrorPercent),
				sigma,
			})
		}
		r.Header(2, titleCase(sector))
		r.Table([]string{"Constant", "Predicted", "Measured", "Error", "σ"}, rows)
	}

	s := out.Summary
	r.Header(2, "Summary")
	r.KeyValue("Measured constants", strconv.Itoa(s.Count))
	r.KeyValue("Median error", formatPercent(s.MedianPercent))
	r.KeyValue("Mean error", formatPercent(s.MeanPercent))
	r.KeyValue("Under 0.01%", fmt.Sprintf("%d/%d", s.UnderBasisPoint, s.Count))
	r.KeyValue("Under 0.1%", fmt.Sprintf("%d/%d", s.UnderTenthPercent, s.Count))
	r.KeyValue("Under 1%", fmt.Sprintf("%d/%d", s.UnderOnePercent, s.Count))
	r.Println("")

	if out.RunID != "" {
		r.Success("saved run " + out.RunID)
	}
}
