package commands

import (
	"math"
	"strconv"

	"github.com/leapstack-labs/goldensearch/internal/cli/output"
	"github.com/leapstack-labs/goldensearch/pkg/chsh"
	"github.com/spf13/cobra"
)

// ScanOptions holds options for the scan command.
type ScanOptions struct {
	Min     float64
	Max     float64
	Steps   int
	Workers int
	Points  bool
}

// ScanOutput is the JSON shape of a scan. Crossing is omitted when the
// sweep never reaches the target.
type ScanOutput struct {
	Min          float64          `json:"min"`
	Max          float64          `json:"max"`
	Steps        int              `json:"steps"`
	Monotonic    bool             `json:"monotonic"`
	Closest      chsh.ScanPoint   `json:"closest"`
	Crossing     *float64         `json:"crossing,omitempty"`
	GoldenHeight float64          `json:"golden_height"`
	Target       float64          `json:"target"`
	Points       []chsh.ScanPoint `json:"points"`
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	opts := &ScanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Sweep the prism height and track the CHSH maximum",
		Long: `Run the self-pair-excluded CHSH search at evenly spaced prism heights.
Heights are evaluated in parallel.

The report states whether the maximum is non-increasing in height, which
grid point comes closest to 4-φ and where the interpolated curve crosses
it. The crossing should sit at the golden height.`,
		Example: `  # Default sweep (config scan.* keys)
  goldensearch scan

  # Coarse sweep with the full point table
  goldensearch scan --min 0.05 --max 3 --steps 40 --points`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.Min, "min", 0, "Lowest height (default from config)")
	cmd.Flags().Float64Var(&opts.Max, "max", 0, "Highest height (default from config)")
	cmd.Flags().IntVar(&opts.Steps, "steps", 0, "Number of heights (default from config)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Parallel workers (default: one per CPU)")
	cmd.Flags().BoolVar(&opts.Points, "points", false, "Show every scanned point")

	return cmd
}

func runScan(cmd *cobra.Command, opts *ScanOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	sc := cmdCtx.Cfg.Scan

	scanOpts := chsh.ScanOptions{
		Min:     sc.Min,
		Max:     sc.Max,
		Steps:   sc.Steps,
		Workers: sc.Workers,
		Logger:  cmdCtx.Logger,
	}
	if cmd.Flags().Changed("min") {
		scanOpts.Min = opts.Min
	}
	if cmd.Flags().Changed("max") {
		scanOpts.Max = opts.Max
	}
	if cmd.Flags().Changed("steps") {
		scanOpts.Steps = opts.Steps
	}
	if cmd.Flags().Changed("workers") {
		scanOpts.Workers = opts.Workers
	}

	res, err := chsh.Scan(cmd.Context(), scanOpts)
	if err != nil {
		return err
	}

	out := ScanOutput{
		Min:          res.Points[0].Height,
		Max:          res.Points[len(res.Points)-1].Height,
		Steps:        len(res.Points),
		Monotonic:    res.Monotonic,
		Closest:      res.Closest,
		GoldenHeight: res.GoldenHeight,
		Target:       res.Target,
		Points:       res.Points,
	}
	if res.Bracketed() {
		c := res.Crossing
		out.Crossing = &c
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	r.Header(1, "Height Scan")
	r.KeyValue("Range", "["+formatFloat(out.Min)+", "+formatFloat(out.Max)+"]")
	r.KeyValue("Steps", strconv.Itoa(out.Steps))
	r.KeyValue("Monotonic", checkMark(out.Monotonic))
	r.KeyValue("Closest", "h="+formatFloat(out.Closest.Height)+" |S|="+formatFloat(out.Closest.MaxScore))
	r.KeyValue("Golden height", formatFloat(out.GoldenHeight))
	if out.Crossing != nil {
		r.KeyValue("Crossing", formatFloat(*out.Crossing))
		r.KeyValue("Crossing offset", strconv.FormatFloat(math.Abs(*out.Crossing-out.GoldenHeight), 'e', 2, 64))
	} else {
		r.KeyValue("Crossing", "not bracketed")
	}
	r.Println("")

	if opts.Points {
		rows := make([][]string, 0, len(out.Points))
		for _, p := range out.Points {
			rows = append(rows, []string{formatFloat(p.Height), formatFloat(p.MaxScore)})
		}
		r.Table([]string{"Height", "Max Score"}, rows)
	}

	if out.Monotonic {
		r.Success("maximum is non-increasing in height")
	} else {
		r.Warning("maximum increases somewhere in the sweep")
	}
	return nil
}
