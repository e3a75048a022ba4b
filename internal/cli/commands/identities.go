package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/goldensearch/internal/cli/output"
	"github.com/leapstack-labs/goldensearch/pkg/golden"
	"github.com/spf13/cobra"
)

// DefaultPrecision is the big.Float precision in bits used by identities.
const DefaultPrecision = 256

// IdentitiesOutput is the JSON shape of an identities run.
type IdentitiesOutput struct {
	Float64 []golden.Identity        `json:"float64"`
	Precise []golden.PreciseIdentity `json:"precise"`
	H4      []golden.H4Eigenvalue    `json:"h4_eigenvalues"`
	Failed  int                      `json:"failed"`
}

// NewIdentitiesCommand creates the identities command.
func NewIdentitiesCommand() *cobra.Command {
	var precision uint

	cmd := &cobra.Command{
		Use:   "identities",
		Short: "Check the golden-ratio identities behind the CHSH bound",
		Long: `Evaluate the algebraic identities behind 4-φ and the exact Lucas
ratios, once in float64 (residual below 1e-14) and once with big.Float at
the requested precision (residual below 2^-(precision-10)). Also lists the
H4 Cartan spectrum 2 - 2cos(πm/30) over the exponents m = 1, 11, 19, 29.

The command fails when any identity does not hold.`,
		Example: `  goldensearch identities
  goldensearch identities --precision 1024 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIdentities(cmd, precision)
		},
	}

	cmd.Flags().UintVar(&precision, "precision", DefaultPrecision, "big.Float precision in bits (at least 53)")

	return cmd
}

func runIdentities(cmd *cobra.Command, precision uint) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	precise, err := golden.PreciseIdentities(precision)
	if err != nil {
		return err
	}
	out := IdentitiesOutput{
		Float64: golden.Identities(),
		Precise: precise,
		H4:      golden.H4Eigenvalues(),
	}
	for _, id := range out.Float64 {
		if !id.Holds {
			out.Failed++
		}
	}
	for _, id := range out.Precise {
		if !id.Holds {
			out.Failed++
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(out); err != nil {
			return err
		}
	} else {
		renderIdentities(r, out, precision)
	}

	if out.Failed > 0 {
		return fmt.Errorf("%d identities failed", out.Failed)
	}
	return nil
}

func renderIdentities(r *output.Renderer, out IdentitiesOutput, precision uint) {
	r.Header(1, "Golden-Ratio Identities")

	r.Header(2, "float64")
	for _, id := range out.Float64 {
		r.StatusLine(id.Name, holdsStatus(id.Holds), "residual "+strconv.FormatFloat(id.Residual, 'e', 2, 64))
	}
	r.Println("")

	r.Header(2, fmt.Sprintf("big.Float (%d bits)", precision))
	for _, id := range out.Precise {
		r.StatusLine(id.Name, holdsStatus(id.Holds), "residual "+strconv.FormatFloat(id.Residual, 'e', 2, 64))
	}
	r.Println("")

	r.Header(2, "H4 Cartan spectrum")
	rows := make([][]string, 0, len(out.H4))
	for _, e := range out.H4 {
		rows = append(rows, []string{strconv.Itoa(e.Exponent), strconv.FormatFloat(e.Value, 'f', 12, 64)})
	}
	r.Table([]string{"Exponent", "Eigenvalue"}, rows)

	if out.Failed == 0 {
		r.Success(fmt.Sprintf("all %d identities hold", len(out.Float64)+len(out.Precise)))
	}
}

func holdsStatus(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}
