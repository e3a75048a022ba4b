package commands

import (
	"strconv"

	"github.com/leapstack-labs/goldensearch/internal/cli/output"
	"github.com/leapstack-labs/goldensearch/pkg/catalog"
	"github.com/spf13/cobra"
)

// DefaultCasimirLimit is the number of formulas shown when --limit is not set.
const DefaultCasimirLimit = 20

// CasimirOutput is the JSON shape of a Casimir search.
type CasimirOutput struct {
	Anchor    float64                  `json:"anchor"`
	Target    float64                  `json:"target"`
	Exponents []int                    `json:"exponents"`
	Formulas  []catalog.CasimirFormula `json:"formulas"`
}

// NewCasimirCommand creates the casimir command.
func NewCasimirCommand() *cobra.Command {
	opts := catalog.CasimirOptions{}

	cmd := &cobra.Command{
		Use:   "casimir",
		Short: "Search signed φ-power sums over E8 Casimir exponents",
		Long: `Enumerate anchor + Σ ±φ^-e over exponents drawn from the E8 Casimir
degrees, their d-1 neighbours and pairwise degree sums, optionally with a
-φ^-t/248 torsion term, and keep every sum within --max-ppm of the target.

The output ranks the formulas by error. Several formulas usually fit, so
a match here is evidence of how crowded the search space is.`,
		Example: `  # Formulas for α⁻¹ around 137
  goldensearch casimir

  # Plain sums only, tighter window
  goldensearch casimir --no-torsion --max-ppm 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCasimir(cmd, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.Anchor, "anchor", catalog.DefaultAnchor, "Integer anchor of the sum")
	cmd.Flags().Float64Var(&opts.Target, "target", catalog.DefaultAlphaInverse, "Value to approximate")
	cmd.Flags().IntVar(&opts.MaxTerms, "max-terms", catalog.DefaultMaxTerms, "Maximum number of φ-power terms")
	cmd.Flags().Float64Var(&opts.MaxPPM, "max-ppm", catalog.DefaultMaxPPM, "Largest error kept, in ppm")
	cmd.Flags().IntVar(&opts.Limit, "limit", DefaultCasimirLimit, "Maximum number of formulas to show (0 for all)")
	cmd.Flags().BoolVar(&opts.NoTorsion, "no-torsion", false, "Skip the -φ^-t/248 family")

	return cmd
}

func runCasimir(cmd *cobra.Command, opts catalog.CasimirOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	formulas, err := catalog.CasimirSearch(opts)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("casimir search finished", "formulas", len(formulas))

	out := CasimirOutput{
		Anchor:    opts.Anchor,
		Target:    opts.Target,
		Exponents: catalog.CasimirExponents(),
		Formulas:  formulas,
	}
	if out.Formulas == nil {
		out.Formulas = []catalog.CasimirFormula{}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	r.Header(1, "Casimir Exponent Search")
	r.KeyValue("Anchor", formatFloat(out.Anchor))
	r.KeyValue("Target", formatFloat(out.Target))
	r.KeyValue("Formulas shown", strconv.Itoa(len(out.Formulas)))
	r.Println("")

	if len(out.Formulas) == 0 {
		r.Muted("No formula within the error window.")
		return nil
	}

	rows := make([][]string, 0, len(out.Formulas))
	for i, f := range out.Formulas {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			f.Formula,
			strconv.FormatFloat(f.Value, 'f', 9, 64),
			formatPPM(f.ErrorPPM),
		})
	}
	r.Table([]string{"#", "Formula", "Value", "Error"}, rows)
	r.Muted("Ranked search results, not derivations.")
	return nil
}
