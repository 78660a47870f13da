// Package stats computes model-wide metrics of a decision model.
package stats

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/dopler/pkg/core"
)

// VariabilityElementCount returns the number of decisions.
func VariabilityElementCount(m *core.DecisionModel) int {
	return m.Size()
}

// ConstraintCount returns the number of rules over all decisions.
func ConstraintCount(m *core.DecisionModel) int {
	count := 0
	for _, d := range m.All() {
		count += len(d.Rules())
	}
	return count
}

// LogModelStatistics logs the question and rule counts at INFO.
func LogModelStatistics(logger *slog.Logger, m *core.DecisionModel) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.LogAttrs(context.Background(), slog.LevelInfo, "model statistics",
		slog.String("model", m.Name),
		slog.Int("#Questions", VariabilityElementCount(m)),
		slog.Int("#Rules", ConstraintCount(m)),
	)
}

// Summary is a per-model breakdown used for reports.
type Summary struct {
	Name        string         `json:"name" yaml:"name"`
	SourceFile  string         `json:"source_file" yaml:"source_file"`
	Questions   int            `json:"questions" yaml:"questions"`
	Rules       int            `json:"rules" yaml:"rules"`
	ByType      map[string]int `json:"by_type" yaml:"by_type"`
	Conditional int            `json:"conditional" yaml:"conditional"` // decisions with a non-trivial visibility
}

// Summarize computes the Summary of m.
func Summarize(m *core.DecisionModel) Summary {
	s := Summary{
		Name:       m.Name,
		SourceFile: m.SourceFile,
		Questions:  VariabilityElementCount(m),
		Rules:      ConstraintCount(m),
		ByType:     make(map[string]int, len(core.Types)),
	}
	for _, t := range core.Types {
		s.ByType[t.String()] = 0
	}
	for _, d := range m.All() {
		s.ByType[d.Type().String()]++
		if !core.IsAlwaysTrue(d.Visibility()) {
			s.Conditional++
		}
	}
	return s
}

// Totals adds up several summaries.
func Totals(summaries []Summary) Summary {
	total := Summary{Name: "total", ByType: make(map[string]int, len(core.Types))}
	for _, t := range core.Types {
		total.ByType[t.String()] = 0
	}
	for _, s := range summaries {
		total.Questions += s.Questions
		total.Rules += s.Rules
		total.Conditional += s.Conditional
		for k, v := range s.ByType {
			total.ByType[k] += v
		}
	}
	return total
}
