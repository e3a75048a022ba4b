package commands

import (
	"strconv"

	"github.com/leapstack-labs/goldensearch/internal/cli/output"
	"github.com/leapstack-labs/goldensearch/pkg/chsh"
	"github.com/spf13/cobra"
)

// BellBounds lists the three CHSH bounds.
type BellBounds struct {
	Classical        float64 `json:"classical"`
	GSM              float64 `json:"gsm"`
	Tsirelson        float64 `json:"tsirelson"`
	SuppressionRatio float64 `json:"suppression_ratio"`
}

// BellFit is a χ² fit of the data to one bound.
type BellFit struct {
	Model float64 `json:"model"`
	Chi2  float64 `json:"chi2"`
	DOF   int     `json:"dof"`
}

// BellOutput is the JSON shape of the bell command.
type BellOutput struct {
	Bounds       BellBounds         `json:"bounds"`
	Comparisons  []chsh.Comparison  `json:"comparisons"`
	WeightedMean float64            `json:"weighted_mean"`
	WeightedErr  float64            `json:"weighted_error"`
	GSMFit       BellFit            `json:"gsm_fit"`
	TsirelsonFit BellFit            `json:"tsirelson_fit"`
	Gamma        float64            `json:"gamma"`
	Multiparty   []chsh.PartyBounds `json:"multiparty"`
}

// NewBellCommand creates the bell command.
func NewBellCommand() *cobra.Command {
	var parties int

	cmd := &cobra.Command{
		Use:   "bell",
		Short: "Compare loophole-free Bell experiments with 4-φ and 2√2",
		Long: `Print the classical, golden and Tsirelson CHSH bounds, then measure
each published loophole-free experiment against 4-φ and 2√2 in units of
its own uncertainty. Reports the inverse-variance weighted mean and the
χ² of the data under each bound.

The multi-party table extends the bounds to n parties: the classical and
quantum Mermin bounds, the golden bound suppressed by η(n) = ((4-φ)/2√2)^(n/2),
and the Svetlichny bounds from three parties on.`,
		Example: `  goldensearch bell
  goldensearch bell --parties 10
  goldensearch bell -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBell(cmd, parties)
		},
	}

	cmd.Flags().IntVar(&parties, "parties", chsh.DefaultMaxParties, "largest party count in the multi-party table (at least 2)")

	return cmd
}

func runBell(cmd *cobra.Command, parties int) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	multiparty, err := chsh.AllBounds(parties)
	if err != nil {
		return err
	}

	exps := chsh.Experiments()
	comps, err := chsh.Compare(exps)
	if err != nil {
		return err
	}
	mean, sigma, err := chsh.WeightedAverage(exps)
	if err != nil {
		return err
	}

	out := BellOutput{
		Bounds: BellBounds{
			Classical:        chsh.ClassicalBound,
			GSM:              chsh.GSMBound(),
			Tsirelson:        chsh.TsirelsonBound(),
			SuppressionRatio: chsh.SuppressionRatio(),
		},
		Comparisons:  comps,
		WeightedMean: mean,
		WeightedErr:  sigma,
		Gamma:        chsh.Gamma(),
		Multiparty:   multiparty,
	}
	if out.GSMFit, err = fitBound(exps, out.Bounds.GSM); err != nil {
		return err
	}
	if out.TsirelsonFit, err = fitBound(exps, out.Bounds.Tsirelson); err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	r.Header(1, "Bell Bounds")
	r.KeyValue("Classical", formatFloat(out.Bounds.Classical))
	r.KeyValue("Golden 4-φ", formatFloat(out.Bounds.GSM))
	r.KeyValue("Tsirelson 2√2", formatFloat(out.Bounds.Tsirelson))
	r.KeyValue("Suppression", formatPercent(out.Bounds.SuppressionRatio*100))
	r.Println("")

	rows := make([][]string, 0, len(comps))
	for _, c := range comps {
		rows = append(rows, []string{
			c.Experiment.Name,
			strconv.Itoa(c.Experiment.Year),
			strconv.FormatFloat(c.Experiment.S, 'f', 4, 64) + " ± " + strconv.FormatFloat(c.Experiment.Error, 'f', 4, 64),
			strconv.FormatFloat(c.GSMSigma, 'f', 2, 64) + "σ",
			strconv.FormatFloat(c.TsirelsonSigma, 'f', 2, 64) + "σ",
			c.Favours,
		})
	}
	r.Header(2, "Experiments")
	r.Table([]string{"Experiment", "Year", "S", "vs 4-φ", "vs 2√2", "Closer to"}, rows)

	r.Header(2, "Fit")
	r.KeyValue("Weighted mean", strconv.FormatFloat(mean, 'f', 4, 64)+" ± "+strconv.FormatFloat(sigma, 'f', 4, 64))
	r.KeyValue("χ² vs 4-φ", strconv.FormatFloat(out.GSMFit.Chi2, 'f', 2, 64)+" ("+strconv.Itoa(out.GSMFit.DOF)+" dof)")
	r.KeyValue("χ² vs 2√2", strconv.FormatFloat(out.TsirelsonFit.Chi2, 'f', 2, 64)+" ("+strconv.Itoa(out.TsirelsonFit.DOF)+" dof)")
	r.Println("")

	renderMultiparty(r, out)
	return nil
}

func renderMultiparty(r *output.Renderer, out BellOutput) {
	r.Header(2, "Multi-Party Bounds")
	r.KeyValue("γ", strconv.FormatFloat(out.Gamma, 'f', 10, 64))
	r.KeyValue("Two-party suppression", strconv.FormatFloat(chsh.GSMSuppression(), 'f', 10, 64))
	r.Println("")

	rows := make([][]string, 0, len(out.Multiparty))
	for _, b := range out.Multiparty {
		svetQ, svetG := "-", "-"
		if b.Parties >= chsh.MinSvetlichnyParties {
			svetQ = strconv.FormatFloat(b.SvetlichnyQuantum, 'f', 4, 64)
			svetG = strconv.FormatFloat(b.SvetlichnyGSM, 'f', 4, 64)
		}
		rows = append(rows, []string{
			strconv.Itoa(b.Parties),
			strconv.FormatFloat(b.Classical, 'f', 3, 64),
			strconv.FormatFloat(b.Quantum, 'f', 4, 64),
			strconv.FormatFloat(b.GSM, 'f', 4, 64),
			strconv.FormatFloat(b.SuppressionPercent, 'f', 1, 64) + "%",
			svetQ,
			svetG,
		})
	}
	r.Table([]string{"Parties", "Classical", "Quantum", "Golden", "Suppression", "Svetlichny QM", "Svetlichny Golden"}, rows)
}

func fitBound(exps []chsh.Experiment, model float64) (BellFit, error) {
	chi2, dof, err := chsh.ChiSquared(exps, model)
	if err != nil {
		return BellFit{}, err
	}
	return BellFit{Model: model, Chi2: chi2, DOF: dof}, nil
}
