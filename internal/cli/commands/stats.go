package commands

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/dopler/internal/cli/output"
	"github.com/leapstack-labs/dopler/internal/registry"
	"github.com/leapstack-labs/dopler/pkg/stats"
	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file>...",
		Short: "Show question and rule counts for decision models",
		Long: `Load one or more decision models and report how many questions
(decisions) and rules each one contains, with totals.

Files are loaded concurrently. A file that fails to load is reported and the
command exits with an error after printing the others.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  # Statistics for one model
  dopler stats car.csv

  # Several models as JSON
  dopler stats models/*.csv --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args)
		},
	}

	return cmd
}

func runStats(cmd *cobra.Command, paths []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	reg, err := cmdCtx.LoadModels(cmd.Context(), paths, false)
	if err != nil {
		return err
	}

	statsOutput := output.StatsOutput{}
	for _, m := range reg.AllModels() {
		stats.LogModelStatistics(cmdCtx.Logger, m)
		statsOutput.Models = append(statsOutput.Models, stats.Summarize(m))
	}
	statsOutput.Total = stats.Totals(statsOutput.Models)
	for _, f := range reg.Failures() {
		statsOutput.Failures = append(statsOutput.Failures, output.FailureInfo{File: f.Path, Error: f.Err.Error()})
	}

	if ok, err := r.Structured(statsOutput); ok || err != nil {
		if err != nil {
			return err
		}
		return failuresError(reg, len(paths))
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		statsMarkdown(r, statsOutput)
	} else {
		statsText(r, statsOutput)
	}
	for _, f := range statsOutput.Failures {
		r.Error(f.Error)
	}
	return failuresError(reg, len(paths))
}

func statsText(r *output.Renderer, s output.StatsOutput) {
	r.Header(1, fmt.Sprintf("Decision Models (%d loaded)", len(s.Models)))

	rows := make([]table.Row, 0, len(s.Models)+1)
	for _, m := range s.Models {
		rows = append(rows, table.Row{m.Name, m.Questions, m.Rules, m.Conditional})
	}
	if len(s.Models) > 1 {
		rows = append(rows, table.Row{r.Styles().Bold.Render("total"), s.Total.Questions, s.Total.Rules, s.Total.Conditional})
	}
	r.Table(table.Row{"Model", "#Questions", "#Rules", "Conditional"}, rows)
}

func statsMarkdown(r *output.Renderer, s output.StatsOutput) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Decision Models (%d loaded)", len(s.Models))))
	r.Println("")

	rows := make([][]string, 0, len(s.Models))
	for _, m := range s.Models {
		rows = append(rows, []string{m.Name, strconv.Itoa(m.Questions), strconv.Itoa(m.Rules), strconv.Itoa(m.Conditional)})
	}
	r.Println(output.FormatTable([]string{"Model", "#Questions", "#Rules", "Conditional"}, rows))
	r.Println("")

	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Total Questions", strconv.Itoa(s.Total.Questions)))
	r.Println(output.FormatKeyValue("Total Rules", strconv.Itoa(s.Total.Rules)))
}

// failuresError summarizes failed loads as a single error.
func failuresError(reg *registry.ModelRegistry, total int) error {
	failures := reg.Failures()
	switch len(failures) {
	case 0:
		return nil
	case 1:
		return failures[0].Err
	default:
		return fmt.Errorf("%d of %d models failed to load", len(failures), total)
	}
}
