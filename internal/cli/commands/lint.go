package commands

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/dopler/internal/cli/output"
	"github.com/leapstack-labs/dopler/pkg/lint"
	_ "github.com/leapstack-labs/dopler/pkg/lint/rules" // register built-in rules
	"github.com/spf13/cobra"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Disable   []string
	ListRules bool
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}

	cmd := &cobra.Command{
		Use:   "lint [file]...",
		Short: "Check decision models for likely mistakes",
		Long: `Run lint rules over decision models that load cleanly.

Rules look for dependency cycles, ENUM cardinalities wider than the option
list, rule assignments outside a NUMBER range and similar constructs. Rules
are configured in the lint section of dopler.yaml:

  lint:
    disabled: [DM06]
    severity:
      DM03: warning

The command exits with an error when a file fails to load or any finding has
error severity.`,
		Example: `  # Lint a model
  dopler lint car.csv

  # Skip a rule
  dopler lint car.csv --disable DM06

  # Show the available rules
  dopler lint --list-rules`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.ListRules {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ListRules {
				return runListRules(cmd)
			}
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to skip (adds to lint.disabled)")
	cmd.Flags().BoolVar(&opts.ListRules, "list-rules", false, "List the available rules and exit")

	return cmd
}

func runLint(cmd *cobra.Command, paths []string, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	lintCfg, err := lint.ConfigFrom(
		slices.Concat(cmdCtx.Cfg.Lint.Disabled, opts.Disable),
		cmdCtx.Cfg.Lint.Severity,
	)
	if err != nil {
		return err
	}
	analyzer := lint.NewAnalyzer(lintCfg)

	reg, err := cmdCtx.LoadModels(cmd.Context(), paths, false)
	if err != nil {
		return err
	}
	failed := make(map[string]error)
	for _, f := range reg.Failures() {
		failed[f.Path] = f.Err
	}

	lintOutput := output.LintOutput{}
	var loadErr error
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		file := output.LintFile{File: path}
		if m, ok := reg.Resolve(abs); ok {
			diags, err := analyzer.Analyze(m)
			if err != nil {
				return err
			}
			for _, d := range diags {
				switch d.Severity {
				case lint.SeverityError:
					lintOutput.Errors++
				case lint.SeverityWarning:
					lintOutput.Warnings++
				}
				file.Diagnostics = append(file.Diagnostics, output.DiagnosticInfo{
					Rule:     d.RuleID,
					Severity: d.Severity.String(),
					Decision: d.Decision,
					Message:  d.Message,
				})
			}
			cmdCtx.Logger.Debug("linted model", "file", path, "diagnostics", len(file.Diagnostics))
		} else if err, ok := failed[abs]; ok {
			file.Error = err.Error()
			if loadErr == nil {
				loadErr = err
			}
		}
		lintOutput.Files = append(lintOutput.Files, file)
	}

	result := func() error {
		if loadErr != nil {
			return loadErr
		}
		if lintOutput.Errors > 0 {
			return fmt.Errorf("lint found %d error(s)", lintOutput.Errors)
		}
		return nil
	}

	if ok, err := r.Structured(lintOutput); ok {
		if err != nil {
			return err
		}
		return result()
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		lintMarkdown(r, lintOutput)
	} else {
		lintText(r, lintOutput)
	}
	return result()
}

func lintText(r *output.Renderer, l output.LintOutput) {
	for _, f := range l.Files {
		switch {
		case f.Error != "":
			r.Error(f.Error)
		case len(f.Diagnostics) == 0:
			r.Success(f.File + ": no issues")
		default:
			r.Header(2, f.File)
			rows := make([]table.Row, 0, len(f.Diagnostics))
			for _, d := range f.Diagnostics {
				rows = append(rows, table.Row{severityStyle(r, d.Severity), d.Rule, d.Decision, d.Message})
			}
			r.Table(table.Row{"Severity", "Rule", "Decision", "Message"}, rows)
		}
	}
	r.Println("")
	r.Printf("%d error(s), %d warning(s)\n", l.Errors, l.Warnings)
}

func severityStyle(r *output.Renderer, severity string) string {
	s := r.Styles()
	switch severity {
	case "error":
		return s.Error.Render(severity)
	case "warning":
		return s.Warning.Render(severity)
	default:
		return s.Muted.Render(severity)
	}
}

func lintMarkdown(r *output.Renderer, l output.LintOutput) {
	r.Println(output.FormatHeader(1, "Lint"))
	r.Println("")

	for _, f := range l.Files {
		r.Println(output.FormatHeader(2, f.File))
		r.Println("")
		switch {
		case f.Error != "":
			r.Printf("- ✗ %s\n", f.Error)
		case len(f.Diagnostics) == 0:
			r.Println("- ✓ no issues")
		default:
			rows := make([][]string, 0, len(f.Diagnostics))
			for _, d := range f.Diagnostics {
				rows = append(rows, []string{d.Severity, d.Rule, d.Decision, d.Message})
			}
			r.Println(output.FormatTable([]string{"Severity", "Rule", "Decision", "Message"}, rows))
		}
		r.Println("")
	}

	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Errors", fmt.Sprint(l.Errors)))
	r.Println(output.FormatKeyValue("Warnings", fmt.Sprint(l.Warnings)))
}

func runListRules(cmd *cobra.Command) error {
	r := NewCommandContext(cmd).Renderer

	var infos []lint.RuleInfo
	for _, rule := range lint.GetAll() {
		infos = append(infos, rule.Info())
	}

	if ok, err := r.Structured(infos); ok {
		return err
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			rows = append(rows, []string{info.ID, info.Name, info.Group, info.DefaultSeverity, info.Description})
		}
		r.Println(output.FormatHeader(1, "Lint Rules"))
		r.Println("")
		r.Println(output.FormatTable([]string{"ID", "Name", "Group", "Severity", "Description"}, rows))
		return nil
	}

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, table.Row{info.ID, info.Name, info.Group, info.DefaultSeverity, info.Description})
	}
	r.Table(table.Row{"ID", "Name", "Group", "Severity", "Description"}, rows)
	return nil
}
