package rules

import (
	"fmt"

	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/leapstack-labs/dopler/pkg/lint"
)

func init() {
	lint.Register(lint.RuleDef{
		ID:          "DM02",
		Name:        "cardinality-exceeds-options",
		Group:       "range",
		Description: "ENUM cardinalities that need or allow more selections than there are options",
		Severity:    lint.SeverityWarning,
		Check:       checkCardinality,

		Rationale: `A minimum above the option count can never be satisfied, so the question can never
be answered validly. A maximum above it is harmless but usually means an option was
removed without updating the cardinality.`,

		BadExample:  `extras,ENUM,Which extras?,roof|hitch,1:3,,`,
		GoodExample: `extras,ENUM,Which extras?,roof|hitch,1:2,,`,
	})

	lint.Register(lint.RuleDef{
		ID:          "DM03",
		Name:        "single-answer",
		Group:       "range",
		Description: "Questions whose range admits exactly one answer",
		Severity:    lint.SeverityHint,
		Check:       checkSingleAnswer,

		Rationale: `An ENUM with one option or a NUMBER range whose bounds are equal asks the user a
question with only one possible answer. It can be replaced by a rule.`,

		BadExample:  `doors,NUMBER,How many doors?,4 - 4,,,`,
		GoodExample: `doors,NUMBER,How many doors?,2 - 5,,,`,
	})
}

func checkCardinality(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for id, d := range ctx.Model.All() {
		c, ok := d.Cardinality()
		if !ok || d.Type() != core.TypeEnum {
			continue
		}
		n := len(d.Options())
		switch {
		case c.Min > n:
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "DM02",
				Severity: lint.SeverityError,
				Message:  fmt.Sprintf("cardinality %s of %s needs at least %d selections but only %d options exist", c, id, c.Min, n),
				Decision: id,
			})
		case c.Max > n:
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "DM02",
				Severity: lint.SeverityWarning,
				Message:  fmt.Sprintf("cardinality %s of %s allows more selections than its %d options", c, id, n),
				Decision: id,
			})
		}
	}
	return diagnostics
}

func checkSingleAnswer(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for id, d := range ctx.Model.All() {
		var only string
		switch d.Type() {
		case core.TypeEnum:
			if opts := d.Options(); len(opts) == 1 {
				only = opts[0]
			}
		case core.TypeNumber:
			if r, ok := d.NumberRange(); ok && r.Low == r.High {
				only = core.NumberValue(r.Low).String()
			}
		}
		if only == "" {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "DM03",
			Severity: lint.SeverityHint,
			Message:  fmt.Sprintf("%s has %s as its only possible answer", id, only),
			Decision: id,
		})
	}
	return diagnostics
}
