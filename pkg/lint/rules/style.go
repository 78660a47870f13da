package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dopler/pkg/lint"
)

func init() {
	lint.Register(lint.RuleDef{
		ID:          "DM06",
		Name:        "missing-question",
		Group:       "style",
		Description: "Decisions without question text",
		Severity:    lint.SeverityInfo,
		Check:       checkMissingQuestion,

		Rationale:   `Front ends show the question text to the user. Without it they fall back to the decision id.`,
		BadExample:  `doors,NUMBER,,2 - 5,,,`,
		GoodExample: `doors,NUMBER,How many doors?,2 - 5,,,`,
	})
}

func checkMissingQuestion(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for id, d := range ctx.Model.All() {
		if strings.TrimSpace(d.Question) != "" {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "DM06",
			Severity: lint.SeverityInfo,
			Message:  fmt.Sprintf("decision %s has no question text", id),
			Decision: id,
		})
	}
	return diagnostics
}
