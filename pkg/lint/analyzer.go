package lint

import (
	"cmp"
	"slices"

	"github.com/leapstack-labs/dopler/pkg/core"
)

// Analyzer runs lint rules against decision models.
type Analyzer struct {
	config *Config
	rules  []RuleDef // nil means the global registry
}

// NewAnalyzer creates an analyzer over the registered rules.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config}
}

// NewAnalyzerWithRules creates an analyzer that runs only the given rules.
func NewAnalyzerWithRules(config *Config, rules ...RuleDef) *Analyzer {
	a := NewAnalyzer(config)
	a.rules = rules
	return a
}

// Analyze runs every enabled rule against m. Diagnostics are ordered by
// severity, then rule ID; findings of one rule keep the order it
// reported them in. No rule runs when the dependency graph of m cannot be
// built.
func (a *Analyzer) Analyze(m *core.DecisionModel) ([]Diagnostic, error) {
	if m == nil {
		return nil, nil
	}

	rules := a.rules
	if rules == nil {
		rules = GetAll()
	}

	ctx, err := NewContext(m)
	if err != nil {
		return nil, err
	}
	var diagnostics []Diagnostic
	for _, rule := range rules {
		if a.config.IsDisabled(rule.ID) {
			continue
		}

		diags := rule.Check(ctx)
		for i := range diags {
			if diags[i].RuleID == "" {
				diags[i].RuleID = rule.ID
			}
			diags[i].Severity = a.config.GetSeverity(rule.ID, diags[i].Severity)
		}
		diagnostics = append(diagnostics, diags...)
	}

	slices.SortStableFunc(diagnostics, func(x, y Diagnostic) int {
		return cmp.Or(cmp.Compare(x.Severity, y.Severity), cmp.Compare(x.RuleID, y.RuleID))
	})
	return diagnostics, nil
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	return slices.ContainsFunc(diags, func(d Diagnostic) bool { return d.Severity == SeverityError })
}
