package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/leapstack-labs/goldensearch/internal/cli/output"
	"github.com/leapstack-labs/goldensearch/pkg/match"
	"github.com/spf13/cobra"
)

// DefaultHuntLimit is the number of seeds shown when --limit is not set.
const DefaultHuntLimit = 10

// HuntOptions holds options for the hunt command.
type HuntOptions struct {
	Spin      string
	Limit     int
	Tolerance float64
	Constant  string
	Catalog   string
}

// HuntOutput is the JSON shape of a hunt run.
type HuntOutput struct {
	Target    float64      `json:"target"`
	Constant  string       `json:"constant,omitempty"`
	Spin      string       `json:"spin"`
	Tolerance float64      `json:"tolerance"`
	Seeds     []match.Seed `json:"seeds"`
}

// NewHuntCommand creates the hunt command.
func NewHuntCommand() *cobra.Command {
	opts := &HuntOptions{}

	cmd := &cobra.Command{
		Use:   "hunt [target]",
		Short: "Search for a closed form plus one torsion correction",
		Long: `Strip each correction ±(7/k)·φ^(-n±1/4), k in 1..5 and n in 0..50, from
the target, match the remainder against the candidate catalog and rank
the reconstructions by their error in ppm.

The spin selects the sign of the quarter shift: fermions use +1/4,
bosons -1/4. This is a search; a good seed is a hint, not a derivation.`,
		Example: `  # Hunt a literal target
  goldensearch hunt 105.6583755 --spin fermion

  # Hunt a catalog constant by name
  goldensearch hunt --constant muon_electron --limit 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHunt(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Spin, "spin", "fermion", "Spin of the target: fermion or boson")
	cmd.Flags().IntVar(&opts.Limit, "limit", DefaultHuntLimit, "Maximum number of seeds to show (0 for all)")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", 0, "Match tolerance for the stripped value (default from config, 0.01)")
	cmd.Flags().StringVar(&opts.Constant, "constant", "", "Hunt the experimental value of a catalog constant")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Extra formula file to look constants up in")

	_ = cmd.RegisterFlagCompletionFunc("spin", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"fermion", "boson"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runHunt(cmd *cobra.Command, args []string, opts *HuntOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if (len(args) == 1) == (opts.Constant != "") {
		return errors.New("provide either a target value or --constant")
	}

	spin, err := match.ParseSpin(opts.Spin)
	if err != nil {
		return err
	}

	var target float64
	if opts.Constant != "" {
		cat, err := cmdCtx.LoadCatalog(opts.Catalog)
		if err != nil {
			return err
		}
		k, err := cat.Get(opts.Constant)
		if err != nil {
			return err
		}
		target = k.Experimental
	} else {
		target, err = parseValue(args[0])
		if err != nil {
			return err
		}
	}

	tol := cmdCtx.Cfg.HuntTolerance
	if cmd.Flags().Changed("tolerance") {
		tol = opts.Tolerance
	}
	if !(tol > 0) {
		return fmt.Errorf("tolerance must be positive, got %g", tol)
	}
	if opts.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", opts.Limit)
	}

	seeds := match.Hunt(target, spin, match.HuntOptions{Tolerance: tol, Limit: opts.Limit})
	cmdCtx.Logger.Debug("hunt finished", "target", target, "spin", spin, "seeds", len(seeds))

	if r.EffectiveMode() == output.ModeJSON {
		if seeds == nil {
			seeds = []match.Seed{}
		}
		return r.JSON(HuntOutput{
			Target:    target,
			Constant:  opts.Constant,
			Spin:      spin.String(),
			Tolerance: tol,
			Seeds:     seeds,
		})
	}

	title := "Seeds for " + formatFloat(target)
	if opts.Constant != "" {
		title = fmt.Sprintf("Seeds for %s (%s)", opts.Constant, formatFloat(target))
	}
	r.Header(1, title)
	r.KeyValue("Spin", spin.String())
	r.KeyValue("Tolerance", strconv.FormatFloat(tol, 'g', -1, 64))
	r.Println("")

	if len(seeds) == 0 {
		r.Muted("No seed reconstructs the target within tolerance.")
		return nil
	}

	rows := make([][]string, 0, len(seeds))
	for i, s := range seeds {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.Candidate.Kind.String(),
			s.Formula(),
			formatFloat(s.Reconstructed),
			formatPPM(s.ErrorPPM),
		})
	}
	r.Table([]string{"#", "Kind", "Seed", "Reconstructed", "Error"}, rows)
	return nil
}
