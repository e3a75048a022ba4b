package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/goldensearch/internal/cli/output"
	"github.com/leapstack-labs/goldensearch/internal/starlark"
	"github.com/leapstack-labs/goldensearch/pkg/match"
	"github.com/spf13/cobra"
)

// MatchOptions holds options for the match command.
type MatchOptions struct {
	Tolerance float64
}

// MatchOutput is the JSON shape of a match run.
type MatchOutput struct {
	Input      string            `json:"input"`
	Value      float64           `json:"value"`
	Tolerance  float64           `json:"tolerance"`
	Candidates []match.Candidate `json:"candidates"`
}

// NewMatchCommand creates the match command.
func NewMatchCommand() *cobra.Command {
	opts := &MatchOptions{}

	cmd := &cobra.Command{
		Use:   "match <value>",
		Short: "List closed forms that match a number",
		Long: `Compare a number against the candidate catalog: integers, fractions p/q
with p,q in 1..20, powers of φ, Lucas values, squared Lucas values,
π-powers k·π^m and compounds φ^a·π^b.

The value may be a literal or an expression over phi, pi, sqrt, pow,
lucas and fib.`,
		Example: `  # Exact match for φ³
  goldensearch match 4.2360679775 --tolerance 1e-9

  # Expressions are evaluated first
  goldensearch match "pow(phi, 3)"

  # Fractions report every equivalent form
  goldensearch match 0.75 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", 0, "Absolute tolerance (default from config, 1e-9)")

	return cmd
}

func runMatch(cmd *cobra.Command, input string, opts *MatchOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	x, err := parseValue(input)
	if err != nil {
		return err
	}

	tol := cmdCtx.Cfg.Tolerance
	if cmd.Flags().Changed("tolerance") {
		tol = opts.Tolerance
	}
	if !(tol > 0) {
		return fmt.Errorf("tolerance must be positive, got %g", tol)
	}

	cands := match.Match(x, tol)
	cmdCtx.Logger.Debug("matched value", "value", x, "tolerance", tol, "candidates", len(cands))

	if r.EffectiveMode() == output.ModeJSON {
		if cands == nil {
			cands = []match.Candidate{}
		}
		return r.JSON(MatchOutput{Input: input, Value: x, Tolerance: tol, Candidates: cands})
	}

	r.Header(1, fmt.Sprintf("Candidates for %s", formatFloat(x)))
	r.KeyValue("Tolerance", strconv.FormatFloat(tol, 'g', -1, 64))
	r.KeyValue("Matches", strconv.Itoa(len(cands)))
	r.Println("")

	if len(cands) == 0 {
		r.Muted("No closed form within tolerance.")
		return nil
	}

	rows := make([][]string, 0, len(cands))
	for _, c := range cands {
		rows = append(rows, []string{
			c.Kind.String(),
			c.Label,
			formatFloat(c.Value),
			strconv.FormatFloat(math.Abs(c.Value-x), 'e', 2, 64),
		})
	}
	r.Table([]string{"Kind", "Form", "Value", "Error"}, rows)
	return nil
}

// parseValue accepts a float literal or a formula expression.
func parseValue(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("value must be finite, got %q", input)
		}
		return v, nil
	}

	v, err := starlark.NewEvaluator(nil).EvalFloat("value", s)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", input, err)
	}
	return v, nil
}
