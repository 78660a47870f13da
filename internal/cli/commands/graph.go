package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dopler/internal/cli/output"
	"github.com/leapstack-labs/dopler/internal/dag"
	"github.com/spf13/cobra"
)

// GraphQuerier provides read-only access to the decision graph.
type GraphQuerier interface {
	GetDependencies(string) []string
	GetDependents(string) []string
	NodeCount() int
	EdgeCount() int
}

// GraphOptions holds options for the graph command.
type GraphOptions struct {
	Upstream   string // Show what this decision depends on
	Downstream string // Show what this decision affects
}

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	opts := &GraphOptions{}
	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Show the dependency graph between decisions",
		Long: `Display which decisions depend on which.

A decision depends on every decision its rules or visibility condition
mention, and on every decision whose rules change it. Decisions are grouped
in levels: a decision only depends on decisions of lower levels, so the
levels give an order in which the questions can be asked.

Rules may form cycles. A cyclic model has no levels; the cycle is reported
instead.`,
		Example: `  # Show the levels
  dopler graph car.csv

  # What does 'tank' depend on?
  dopler graph car.csv --upstream tank

  # What is affected by 'engine'?
  dopler graph car.csv --downstream engine --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Upstream, "upstream", "", "Only show the transitive dependencies of this decision")
	cmd.Flags().StringVar(&opts.Downstream, "downstream", "", "Only show the decisions affected by this decision")
	cmd.MarkFlagsMutuallyExclusive("upstream", "downstream")

	return cmd
}

func runGraph(cmd *cobra.Command, path string, opts *GraphOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	m, err := cmdCtx.LoadModel(path)
	if err != nil {
		return err
	}
	graph, err := dag.FromModel(m)
	if err != nil {
		return err
	}

	if focus := opts.Upstream + opts.Downstream; focus != "" {
		if _, ok := graph.GetNode(focus); !ok {
			return fmt.Errorf("decision %q not found in %s", focus, m.Name)
		}
		var ids []string
		if opts.Upstream != "" {
			ids = append(graph.GetUpstreamNodes(focus), focus)
		} else {
			ids = graph.GetAffectedNodes([]string{focus})
		}
		graph = graph.Subgraph(ids)
	}

	graphOutput := output.GraphOutput{
		Model:      m.Name,
		TotalNodes: graph.NodeCount(),
		TotalEdges: graph.EdgeCount(),
	}
	if hasCycle, cycle := graph.HasCycle(); hasCycle {
		graphOutput.Cycle = cycle
	} else {
		levels, err := graph.GetResolutionLevels()
		if err != nil {
			return fmt.Errorf("failed to get resolution levels: %w", err)
		}
		for i, level := range levels {
			graphLevel := output.GraphLevel{Level: i, Decisions: make([]output.GraphNode, 0, len(level))}
			for _, id := range level {
				graphLevel.Decisions = append(graphLevel.Decisions, output.GraphNode{
					ID:        id,
					DependsOn: graph.GetDependencies(id),
					UsedBy:    graph.GetDependents(id),
				})
			}
			graphOutput.Levels = append(graphOutput.Levels, graphLevel)
		}
	}

	if ok, err := r.Structured(graphOutput); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		graphMarkdown(r, graph, graphOutput)
	} else {
		graphText(r, graph, graphOutput)
	}
	return nil
}

// graphText outputs the graph in styled text format.
func graphText(r *output.Renderer, graph GraphQuerier, g output.GraphOutput) {
	styles := r.Styles()

	r.Header(1, "Dependency Graph: "+g.Model)

	if len(g.Cycle) > 0 {
		r.Warning("cycle: " + strings.Join(g.Cycle, " -> "))
	}

	for _, level := range g.Levels {
		r.Println(styles.Header2.Render(fmt.Sprintf("Level %d:", level.Level)))
		for _, node := range level.Decisions {
			r.Printf("  %s\n", styles.ID.Render(node.ID))
			if len(node.DependsOn) > 0 {
				r.Printf("    %s %s\n", styles.Muted.Render("depends on:"), strings.Join(node.DependsOn, ", "))
			}
			if len(node.UsedBy) > 0 {
				r.Printf("    %s %s\n", styles.Muted.Render("used by:"), strings.Join(node.UsedBy, ", "))
			}
		}
		r.Println("")
	}

	r.Println(styles.Muted.Render(fmt.Sprintf("Total: %d decisions, %d dependencies", graph.NodeCount(), graph.EdgeCount())))
}

// graphMarkdown outputs the graph in markdown format.
func graphMarkdown(r *output.Renderer, graph GraphQuerier, g output.GraphOutput) {
	r.Println(output.FormatHeader(1, "Dependency Graph: "+g.Model))
	r.Println("")

	if len(g.Cycle) > 0 {
		r.Println(output.FormatKeyValue("Cycle", output.FormatCode(strings.Join(g.Cycle, " -> "))))
		r.Println("")
	}

	for _, level := range g.Levels {
		levelName := fmt.Sprintf("Level %d", level.Level)
		if level.Level == 0 {
			levelName = "Level 0 (Independent)"
		}
		r.Println(output.FormatHeader(2, levelName))

		for _, node := range level.Decisions {
			r.Printf("- %s\n", node.ID)
			if len(node.DependsOn) > 0 {
				r.Printf("  - depends on: %s\n", strings.Join(node.DependsOn, ", "))
			}
			if len(node.UsedBy) > 0 {
				r.Printf("  - used by: %s\n", strings.Join(node.UsedBy, ", "))
			}
		}
		r.Println("")
	}

	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Total Decisions", fmt.Sprintf("%d", graph.NodeCount())))
	r.Println(output.FormatKeyValue("Total Dependencies", fmt.Sprintf("%d", graph.EdgeCount())))
}
