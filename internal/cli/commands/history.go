package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/leapstack-labs/goldensearch/internal/cli/output"
	"github.com/leapstack-labs/goldensearch/internal/state"
	"github.com/spf13/cobra"
)

// RunDetail is a run with its stored results.
type RunDetail struct {
	Run     *state.Run        `json:"run"`
	Results []state.ResultRow `json:"results"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded verification runs",
		Long: `List runs recorded with verify --save, newest first. With a run ID,
show that run and every result stored with it.`,
		Example: `  # Recent runs
  goldensearch history --limit 5

  # One run in detail
  goldensearch history 3f1c9a52-... -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runHistoryShow(cmd, args[0])
			}
			return runHistoryList(cmd, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", state.DefaultListLimit, "Maximum number of runs to list")

	return cmd
}

func runHistoryList(cmd *cobra.Command, limit int) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	store, cleanup, err := cmdCtx.OpenStore()
	if err != nil {
		return err
	}
	defer cleanup()

	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		if runs == nil {
			runs = []*state.Run{}
		}
		return r.JSON(runs)
	}

	r.Header(1, fmt.Sprintf("Runs (%d)", len(runs)))
	if len(runs) == 0 {
		r.Muted("No runs recorded. Use verify --save to record one.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.Command,
			string(run.Status),
			run.StartedAt.Local().Format(time.DateTime),
			run.Args,
		})
	}
	r.Table([]string{"ID", "Command", "Status", "Started", "Args"}, rows)
	return nil
}

func runHistoryShow(cmd *cobra.Command, id string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	store, cleanup, err := cmdCtx.OpenStore()
	if err != nil {
		return err
	}
	defer cleanup()

	run, err := store.GetRun(id)
	if err != nil {
		return err
	}
	results, err := store.GetResults(id)
	if err != nil {
		return err
	}
	if results == nil {
		results = []state.ResultRow{}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(RunDetail{Run: run, Results: results})
	}

	r.Header(1, "Run "+run.ID)
	r.KeyValue("Command", run.Command)
	if run.Args != "" {
		r.KeyValue("Args", run.Args)
	}
	r.KeyValue("Started", run.StartedAt.Local().Format(time.DateTime))
	if run.CompletedAt != nil {
		r.KeyValue("Duration", run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond).String())
	}
	r.Println("")
	r.StatusLine("status", string(run.Status), run.Error)
	r.Println("")

	if len(results) == 0 {
		r.Muted("No results stored for this run.")
		return nil
	}

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		sigma := "-"
		if res.Sigma > 0 {
			sigma = strconv.FormatFloat(res.Sigma, 'f', 2, 64)
		}
		rows = append(rows, []string{
			res.Name,
			formatFloat(res.Predicted),
			formatFloat(res.Experimental),
			formatPPM(res.ErrorPPM),
			sigma,
		})
	}
	r.Table([]string{"Constant", "Predicted", "Measured", "Error", "σ"}, rows)
	return nil
}
