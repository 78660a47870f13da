package rules

import (
	"fmt"

	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/leapstack-labs/dopler/pkg/lint"
)

func init() {
	lint.Register(lint.RuleDef{
		ID:          "DM04",
		Name:        "assignment-out-of-range",
		Group:       "rule",
		Description: "Rules that assign a NUMBER decision a value outside its range",
		Severity:    lint.SeverityError,
		Check:       checkAssignmentRange,

		Rationale: `Whenever the rule fires it forces the decision into a value its own range forbids,
leaving the configuration invalid.`,

		BadExample:  `sport,BOOLEAN,Sport package?,,,doors = 7 if sport,`,
		GoodExample: `sport,BOOLEAN,Sport package?,,,doors = 2 if sport,`,
	})

	lint.Register(lint.RuleDef{
		ID:          "DM05",
		Name:        "contradictory-actions",
		Group:       "rule",
		Description: "Rules whose actions undo each other",
		Severity:    lint.SeverityWarning,
		Check:       checkContradictoryActions,

		Rationale: `Selecting and deselecting the same thing, allowing and forbidding the same option,
or assigning two values to one decision in a single rule leaves the outcome up to
action order.`,

		BadExample:  `if (sport) { select engine.petrol; deselect engine.petrol; }`,
		GoodExample: `if (sport) { select engine.petrol; }`,
	})

	lint.Register(lint.RuleDef{
		ID:          "DM07",
		Name:        "constant-comparison",
		Group:       "rule",
		Description: "Comparisons whose result is fixed by the NUMBER range",
		Severity:    lint.SeverityWarning,
		Check:       checkConstantComparison,

		Rationale: `A comparison against a value outside the decision's range is either always true or
never true, so the condition does not depend on the answer at all.`,

		BadExample:  `tank,NUMBER,Tank size?,0 - 80,,,doors > 9`,
		GoodExample: `tank,NUMBER,Tank size?,0 - 80,,,doors > 3`,
	})
}

func checkAssignmentRange(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for id, d := range ctx.Model.All() {
		for _, rule := range d.Rules() {
			for _, action := range rule.Actions {
				set, ok := action.(*core.SetValue)
				if !ok || set.Value.Kind != core.LiteralNumber {
					continue
				}
				target, ok := ctx.Model.Get(set.Decision)
				if !ok {
					continue
				}
				r, ok := target.NumberRange()
				if !ok || r.Contains(set.Value.Number) {
					continue
				}
				diagnostics = append(diagnostics, lint.Diagnostic{
					RuleID:   "DM04",
					Severity: lint.SeverityError,
					Message:  fmt.Sprintf("rule of %s sets %s outside its range %s", id, set, r),
					Decision: id,
				})
			}
		}
	}
	return diagnostics
}

// actionKey identifies what an action changes; opposite actions share a key.
type actionKey struct {
	group    string
	decision string
	option   string
}

func checkContradictoryActions(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for id, d := range ctx.Model.All() {
		for _, rule := range d.Rules() {
			seen := make(map[actionKey]core.Action)
			for _, action := range rule.Actions {
				key, ok := keyOf(action)
				if !ok {
					continue
				}
				prev, dup := seen[key]
				if !dup {
					seen[key] = action
					continue
				}
				if prev.String() == action.String() {
					continue
				}
				diagnostics = append(diagnostics, lint.Diagnostic{
					RuleID:   "DM05",
					Severity: lint.SeverityWarning,
					Message:  fmt.Sprintf("rule of %s both applies %q and %q", id, prev, action),
					Decision: id,
				})
			}
		}
	}
	return diagnostics
}

func keyOf(a core.Action) (actionKey, bool) {
	switch a := a.(type) {
	case *core.Select:
		return actionKey{"select", a.Decision, a.Option}, true
	case *core.Deselect:
		return actionKey{"select", a.Decision, a.Option}, true
	case *core.Allow:
		return actionKey{"allow", a.Decision, a.Option}, true
	case *core.Disallow:
		return actionKey{"allow", a.Decision, a.Option}, true
	case *core.SetValue:
		return actionKey{"set", a.Decision, ""}, true
	default:
		return actionKey{}, false
	}
}

func checkConstantComparison(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	report := func(owner string, cond core.Condition) {
		core.WalkCondition(cond, func(n core.Condition) bool {
			cmp, ok := n.(*core.Compare)
			if !ok || cmp.Value.Kind != core.LiteralNumber {
				return true
			}
			target, ok := ctx.Model.Get(cmp.Decision)
			if !ok {
				return true
			}
			r, ok := target.NumberRange()
			if !ok {
				return true
			}
			if outcome, fixed := compareOutcome(cmp.Op, cmp.Value.Number, r); fixed {
				diagnostics = append(diagnostics, lint.Diagnostic{
					RuleID:   "DM07",
					Severity: lint.SeverityWarning,
					Message:  fmt.Sprintf("condition %s in %s is always %t for range %s", cmp, owner, outcome, r),
					Decision: owner,
				})
			}
			return true
		})
	}

	for id, d := range ctx.Model.All() {
		for _, rule := range d.Rules() {
			report(id, rule.Condition)
		}
		report(id, d.Visibility())
	}
	return diagnostics
}

// compareOutcome reports whether `x op v` has the same result for every x
// in r, and what that result is.
func compareOutcome(op core.CompareOp, v float64, r core.NumberRange) (outcome, fixed bool) {
	switch op {
	case core.OpEq, core.OpNe:
		if r.Contains(v) {
			return false, false
		}
		return op == core.OpNe, true
	case core.OpLt:
		return decide(r.High < v, r.Low >= v)
	case core.OpLe:
		return decide(r.High <= v, r.Low > v)
	case core.OpGt:
		return decide(r.Low > v, r.High <= v)
	case core.OpGe:
		return decide(r.Low >= v, r.High < v)
	default:
		return false, false
	}
}

func decide(always, never bool) (outcome, fixed bool) {
	switch {
	case always:
		return true, true
	case never:
		return false, true
	default:
		return false, false
	}
}
