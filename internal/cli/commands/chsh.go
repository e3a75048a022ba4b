package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/goldensearch/internal/cli/output"
	"github.com/leapstack-labs/goldensearch/pkg/chsh"
	"github.com/spf13/cobra"
)

// CHSHOptions holds options for the chsh command.
type CHSHOptions struct {
	Height         float64
	AllowSelfPairs bool
}

// CHSHOutput is the JSON shape of a certificate run.
type CHSHOutput struct {
	Height           float64           `json:"height"`
	GoldenHeight     float64           `json:"golden_height"`
	Vertices         int               `json:"vertices"`
	ExcludeSelfPairs bool              `json:"exclude_self_pairs"`
	Result           chsh.SearchResult `json:"result"`
}

// NewCHSHCommand creates the chsh command.
func NewCHSHCommand() *cobra.Command {
	opts := &CHSHOptions{}

	cmd := &cobra.Command{
		Use:   "chsh",
		Short: "Brute-force the CHSH maximum over a pentagonal prism",
		Long: `Build the ten unit vectors of a pentagonal prism and evaluate
|S| = |-a·b + a·b' + a'·b + a'·b'| for every index quadruple.

At the golden height h² = 3/(2φ) with self-pairs excluded the maximum is
4-φ and no quadruple exceeds it. The report counts quadruples tested,
optima and quadruples above the bound.`,
		Example: `  # Certificate at the golden height
  goldensearch chsh

  # Another height, self-pairs allowed
  goldensearch chsh --height 0.5 --allow-self-pairs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCHSH(cmd, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.Height, "height", 0, "Prism height (default: golden height)")
	cmd.Flags().BoolVar(&opts.AllowSelfPairs, "allow-self-pairs", false, "Include quadruples with a == a' or b == b'")

	return cmd
}

func runCHSH(cmd *cobra.Command, opts *CHSHOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	height := chsh.GoldenHeight()
	if cmd.Flags().Changed("height") {
		height = opts.Height
	}

	vertices, err := chsh.PrismVertices(height)
	if err != nil {
		return err
	}

	searchOpts := chsh.DefaultOptions()
	searchOpts.ExcludeSelfPairs = !opts.AllowSelfPairs

	res, err := chsh.BruteForceContext(cmd.Context(), vertices, searchOpts)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("chsh search finished", "height", height, "tested", res.Tested, "max", res.MaxScore)

	out := CHSHOutput{
		Height:           height,
		GoldenHeight:     chsh.GoldenHeight(),
		Vertices:         len(vertices),
		ExcludeSelfPairs: searchOpts.ExcludeSelfPairs,
		Result:           res,
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	default:
		renderCHSH(r, out)
		return nil
	}
}

func renderCHSH(r *output.Renderer, out CHSHOutput) {
	res := out.Result

	r.Header(1, "CHSH Certificate")
	r.KeyValue("Height", formatFloat(out.Height))
	r.KeyValue("Golden height", formatFloat(out.GoldenHeight))
	r.KeyValue("Vertices", strconv.Itoa(out.Vertices))
	r.KeyValue("Self-pairs excluded", checkMark(out.ExcludeSelfPairs))
	r.KeyValue("Quadruples tested", strconv.Itoa(res.Tested))
	r.Println("")

	r.Header(2, "Result")
	r.KeyValue("Max |S|", strconv.FormatFloat(res.MaxScore, 'f', 16, 64))
	r.KeyValue("Target 4-φ", strconv.FormatFloat(res.Target, 'f', 16, 64))
	r.KeyValue("Best quadruple", res.Best.String())
	r.KeyValue("Optima", strconv.Itoa(res.OptimaCount))
	r.KeyValue("Above bound", strconv.Itoa(res.ExceedingBound))
	r.Println("")

	switch {
	case res.MatchesTarget && res.ExceedingBound == 0:
		r.Success("maximum equals 4-φ and no quadruple exceeds it")
	case res.MatchesTarget:
		r.Warning(fmt.Sprintf("maximum equals 4-φ but %d quadruples exceed the bound", res.ExceedingBound))
	default:
		r.Muted(fmt.Sprintf("maximum differs from 4-φ by %.3e", res.MaxScore-res.Target))
	}
}
