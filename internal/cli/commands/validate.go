package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/leapstack-labs/dopler/internal/cli/output"
	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/leapstack-labs/dopler/pkg/stats"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that decision models load",
		Long: `Deserialize each file and report whether it is a valid decision model.

Every file is checked. The command exits with the error of the first invalid
file in argument order, which names the row, decision and column at fault.`,
		Example: `  # Validate all exports
  dopler validate models/*.csv

  # Machine-readable results
  dopler validate car.csv --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args)
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, paths []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	reg, err := cmdCtx.LoadModels(cmd.Context(), paths, false)
	if err != nil {
		return err
	}
	failed := make(map[string]error)
	for _, f := range reg.Failures() {
		failed[f.Path] = f.Err
	}

	validateOutput := output.ValidateOutput{Valid: true}
	var firstErr error
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		result := output.ValidateResult{File: path, Valid: true}
		if m, ok := reg.Resolve(abs); ok {
			result.Questions = stats.VariabilityElementCount(m)
			result.Rules = stats.ConstraintCount(m)
		} else if loadErr, ok := failed[abs]; ok {
			result = describeFailure(path, loadErr)
			validateOutput.Valid = false
			if firstErr == nil {
				firstErr = loadErr
			}
		}
		validateOutput.Results = append(validateOutput.Results, result)
	}

	if ok, err := r.Structured(validateOutput); ok {
		if err != nil {
			return err
		}
		return firstErr
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	if markdown {
		r.Println(output.FormatHeader(1, "Validation"))
		r.Println("")
	}
	for _, res := range validateOutput.Results {
		switch {
		case res.Valid && markdown:
			r.Printf("- ✓ %s (%d questions, %d rules)\n", res.File, res.Questions, res.Rules)
		case res.Valid:
			r.Success(fmt.Sprintf("%s (%d questions, %d rules)", res.File, res.Questions, res.Rules))
		case markdown:
			r.Printf("- ✗ %s: %s\n", res.File, res.Error)
		default:
			r.Error(res.Error)
		}
	}
	return firstErr
}

// describeFailure extracts the location of a load error.
func describeFailure(path string, err error) output.ValidateResult {
	result := output.ValidateResult{File: path, Error: err.Error()}
	var loadErr *core.LoadError
	if errors.As(err, &loadErr) {
		result.Row = loadErr.Row
		result.Column = loadErr.Column
		if loadErr.Kind != nil {
			result.Kind = loadErr.Kind.Error()
		}
	}
	return result
}
