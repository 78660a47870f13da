package commands

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/dopler/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <file>",
		Short: "List the decisions of a model",
		Long: `List every decision of a model in row order with its type, question,
range, cardinality and rule count.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # List decisions (auto-detect output format)
  dopler list car.csv

  # List decisions as JSON
  dopler list car.csv --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0])
		},
	}

	return cmd
}

func runList(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	m, err := cmdCtx.LoadModel(path)
	if err != nil {
		return err
	}
	model, err := describeModel(m)
	if err != nil {
		return err
	}

	if ok, err := r.Structured(model); ok {
		return err
	}

	header := []string{"ID", "Type", "Question", "Range", "Cardinality", "#Rules", "Visible If"}
	rows := make([][]string, 0, len(model.Decisions))
	for _, d := range model.Decisions {
		rows = append(rows, []string{d.ID, d.Type, d.Question, d.Range, d.Cardinality, strconv.Itoa(len(d.Rules)), d.Visibility})
	}

	title := fmt.Sprintf("%s (%d decisions)", model.Name, len(model.Decisions))
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, title))
		r.Println("")
		r.Println(output.FormatTable(header, rows))
		return nil
	}

	r.Header(1, title)
	tableHeader := make(table.Row, len(header))
	for i, h := range header {
		tableHeader[i] = h
	}
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row{r.Styles().ID.Render(row[0]), row[1], row[2], row[3], row[4], row[5], row[6]}
	}
	r.Table(tableHeader, tableRows)
	return nil
}
