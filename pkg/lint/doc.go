// Package lint checks loaded decision models for constructs that load
// cleanly but are probably mistakes: dependency cycles, ENUM cardinalities
// wider than the option list, assignments outside a NUMBER range.
//
// # Rule Registration
//
// Rules register themselves from init() functions when their package is
// imported:
//
//	import _ "github.com/leapstack-labs/dopler/pkg/lint/rules"
//
// # Rule Groups
//
//   - structure: how decisions depend on each other
//   - range: value domains and cardinalities
//   - rule: rule conditions and actions
//   - style: question texts
//
// # Configuration
//
// Rules can be disabled or have their severity changed through Config:
//
//	cfg := lint.NewConfig().Disable("DM06").SetSeverity("DM03", lint.SeverityWarning)
//	diags, err := lint.NewAnalyzer(cfg).Analyze(model)
package lint
