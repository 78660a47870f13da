package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dopler/internal/cli/output"
	"github.com/spf13/cobra"
)

// InspectOptions holds options for the inspect command.
type InspectOptions struct {
	Decision string // Only show this decision
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the full content of a model",
		Long: `Show every decision of a model with its canonical rules, visibility
condition and dependencies.

JSON and YAML output contain the complete model and can be used to diff two
versions of a spreadsheet export.`,
		Example: `  # Inspect a model
  dopler inspect car.csv

  # Inspect a single decision
  dopler inspect car.csv --decision engine

  # Dump the model as YAML
  dopler inspect car.csv --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Decision, "decision", "d", "", "Only show the decision with this id")

	return cmd
}

func runInspect(cmd *cobra.Command, path string, opts *InspectOptions) error {
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

	if opts.Decision != "" {
		var found []output.DecisionInfo
		for _, d := range model.Decisions {
			if d.ID == opts.Decision {
				found = append(found, d)
			}
		}
		if len(found) == 0 {
			return fmt.Errorf("decision %q not found in %s", opts.Decision, model.Name)
		}
		model.Decisions = found
	}

	if ok, err := r.Structured(model); ok {
		return err
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		inspectMarkdown(r, model)
	} else {
		inspectText(r, model)
	}
	return nil
}

func inspectText(r *output.Renderer, model output.ModelOutput) {
	styles := r.Styles()

	r.Header(1, model.Name)
	r.Println(styles.Muted.Render(model.SourceFile))
	r.Println("")

	for _, d := range model.Decisions {
		r.Printf("%s %s\n", styles.ID.Render(d.ID), styles.Muted.Render(d.Type))
		r.Printf("  %s\n", d.Question)
		if d.Range != "" {
			r.Printf("  %s %s\n", styles.Muted.Render("range:"), d.Range)
		}
		if d.Cardinality != "" {
			r.Printf("  %s %s\n", styles.Muted.Render("cardinality:"), d.Cardinality)
		}
		r.Printf("  %s %s\n", styles.Muted.Render("visible if:"), d.Visibility)
		for _, rule := range d.Rules {
			r.Printf("  %s %s\n", styles.Muted.Render("rule:"), rule)
		}
		if len(d.Dependencies) > 0 {
			r.Printf("  %s %s\n", styles.Muted.Render("depends on:"), strings.Join(d.Dependencies, ", "))
		}
		r.Println("")
	}

	r.Println(styles.Muted.Render(fmt.Sprintf("Total: %d questions, %d rules", model.Summary.Questions, model.Summary.Rules)))
}

func inspectMarkdown(r *output.Renderer, model output.ModelOutput) {
	r.Println(output.FormatHeader(1, model.Name))
	r.Println("")
	r.Println(output.FormatKeyValue("Source", model.SourceFile))
	r.Println("")

	for _, d := range model.Decisions {
		r.Println(output.FormatHeader(2, d.ID))
		r.Println(output.FormatKeyValue("Type", d.Type))
		r.Println(output.FormatKeyValue("Question", d.Question))
		if d.Range != "" {
			r.Println(output.FormatKeyValue("Range", d.Range))
		}
		if d.Cardinality != "" {
			r.Println(output.FormatKeyValue("Cardinality", d.Cardinality))
		}
		r.Println(output.FormatKeyValue("Visible If", output.FormatCode(d.Visibility)))
		if len(d.Dependencies) > 0 {
			r.Println(output.FormatKeyValue("Depends On", strings.Join(d.Dependencies, ", ")))
		}
		if len(d.Rules) > 0 {
			r.Println("")
			r.Println(output.FormatCodeBlock("", strings.Join(d.Rules, "\n")))
		}
		r.Println("")
	}
}
