package commands

import (
	"github.com/leapstack-labs/dopler/internal/cli/output"
	"github.com/leapstack-labs/dopler/internal/dag"
	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/leapstack-labs/dopler/pkg/stats"
)

// describeDecision flattens d for list and inspect output.
func describeDecision(d *core.Decision, g *dag.Graph) output.DecisionInfo {
	info := output.DecisionInfo{
		ID:           d.ID(),
		Type:         d.Type().String(),
		Question:     d.Question,
		Visibility:   "true",
		Dependencies: g.GetDependencies(d.ID()),
		Dependents:   g.GetDependents(d.ID()),
	}
	if r := d.Range(); r != nil {
		info.Range = r.String()
	}
	if c, ok := d.Cardinality(); ok {
		info.Cardinality = c.String()
	}
	if v := d.Visibility(); v != nil {
		info.Visibility = v.String()
	}
	for _, rule := range d.Rules() {
		info.Rules = append(info.Rules, rule.String())
	}
	return info
}

// describeModel flattens m for list and inspect output.
func describeModel(m *core.DecisionModel) (output.ModelOutput, error) {
	g, err := dag.FromModel(m)
	if err != nil {
		return output.ModelOutput{}, err
	}
	out := output.ModelOutput{
		Name:       m.Name,
		SourceFile: m.SourceFile,
		Decisions:  make([]output.DecisionInfo, 0, m.Size()),
		Summary:    stats.Summarize(m),
	}
	for _, d := range m.All() {
		out.Decisions = append(out.Decisions, describeDecision(d, g))
	}
	return out, nil
}
