// Package rules holds the built-in decision model lint rules.
// Importing it registers them with the lint package.
package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/leapstack-labs/dopler/pkg/lint"
)

func init() {
	lint.Register(lint.RuleDef{
		ID:          "DM01",
		Name:        "dependency-cycle",
		Group:       "structure",
		Description: "Decisions that depend on each other in a cycle",
		Severity:    lint.SeverityWarning,
		Check:       checkDependencyCycle,

		Rationale: `A cycle means there is no order in which the questions can be asked so that every
rule and visibility condition is settled before it is needed. Tools that resolve
decisions level by level cannot place any decision on the cycle.`,

		BadExample: `A,BOOLEAN,Use A?,,,,B
B,BOOLEAN,Use B?,,,,A`,

		GoodExample: `A,BOOLEAN,Use A?,,,,
B,BOOLEAN,Use B?,,,,A`,
	})

	lint.Register(lint.RuleDef{
		ID:          "DM08",
		Name:        "never-visible",
		Group:       "structure",
		Description: "Decisions whose visibility is the constant false",
		Severity:    lint.SeverityWarning,
		Check:       checkNeverVisible,

		Rationale: `A decision that can never be shown can only be set by rules. That is usually a
leftover from switching a question off rather than a deliberate choice.`,

		BadExample:  `tank,NUMBER,Tank size?,0 - 80,,,false`,
		GoodExample: `tank,NUMBER,Tank size?,0 - 80,,,!engine.electric`,
	})
}

// checkDependencyCycle reports the first cycle found in the dependency graph.
func checkDependencyCycle(ctx *lint.Context) []lint.Diagnostic {
	hasCycle, path := ctx.Graph.HasCycle()
	if !hasCycle {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "DM01",
		Severity: lint.SeverityWarning,
		Message:  fmt.Sprintf("decisions depend on each other in a cycle: %s", strings.Join(path, " -> ")),
		Decision: path[0],
	}}
}

func checkNeverVisible(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for id, d := range ctx.Model.All() {
		if b, ok := d.Visibility().(*core.BoolLiteral); ok && !b.Value {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "DM08",
				Severity: lint.SeverityWarning,
				Message:  fmt.Sprintf("decision %s is never visible", id),
				Decision: id,
			})
		}
	}
	return diagnostics
}
