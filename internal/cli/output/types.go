package output

import "github.com/leapstack-labs/dopler/pkg/stats"

// DecisionInfo describes one decision in list and inspect output.
type DecisionInfo struct {
	ID           string   `json:"id" yaml:"id"`
	Type         string   `json:"type" yaml:"type"`
	Question     string   `json:"question" yaml:"question"`
	Range        string   `json:"range,omitempty" yaml:"range,omitempty"`
	Cardinality  string   `json:"cardinality,omitempty" yaml:"cardinality,omitempty"`
	Rules        []string `json:"rules,omitempty" yaml:"rules,omitempty"`
	Visibility   string   `json:"visibility" yaml:"visibility"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Dependents   []string `json:"dependents,omitempty" yaml:"dependents,omitempty"`
}

// ModelOutput is the inspect and list payload.
type ModelOutput struct {
	Name       string         `json:"name" yaml:"name"`
	SourceFile string         `json:"source_file" yaml:"source_file"`
	Decisions  []DecisionInfo `json:"decisions" yaml:"decisions"`
	Summary    stats.Summary  `json:"summary" yaml:"summary"`
}

// StatsOutput is the stats payload.
type StatsOutput struct {
	Models   []stats.Summary `json:"models" yaml:"models"`
	Total    stats.Summary   `json:"total" yaml:"total"`
	Failures []FailureInfo   `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// FailureInfo is a file that did not load.
type FailureInfo struct {
	File  string `json:"file" yaml:"file"`
	Error string `json:"error" yaml:"error"`
}

// GraphOutput is the graph payload. Levels is empty when Cycle is set.
type GraphOutput struct {
	Model      string       `json:"model" yaml:"model"`
	Levels     []GraphLevel `json:"levels,omitempty" yaml:"levels,omitempty"`
	Cycle      []string     `json:"cycle,omitempty" yaml:"cycle,omitempty"`
	TotalNodes int          `json:"total_nodes" yaml:"total_nodes"`
	TotalEdges int          `json:"total_edges" yaml:"total_edges"`
}

// GraphLevel groups decisions of the same depth.
type GraphLevel struct {
	Level     int         `json:"level" yaml:"level"`
	Decisions []GraphNode `json:"decisions" yaml:"decisions"`
}

// GraphNode is one decision with its edges.
type GraphNode struct {
	ID        string   `json:"id" yaml:"id"`
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	UsedBy    []string `json:"used_by,omitempty" yaml:"used_by,omitempty"`
}

// ValidateOutput is the validate payload.
type ValidateOutput struct {
	Valid   bool             `json:"valid" yaml:"valid"`
	Results []ValidateResult `json:"results" yaml:"results"`
}

// ValidateResult is the outcome for one file.
type ValidateResult struct {
	File      string `json:"file" yaml:"file"`
	Valid     bool   `json:"valid" yaml:"valid"`
	Questions int    `json:"questions,omitempty" yaml:"questions,omitempty"`
	Rules     int    `json:"rules,omitempty" yaml:"rules,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	Kind      string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Row       int    `json:"row,omitempty" yaml:"row,omitempty"`
	Column    string `json:"column,omitempty" yaml:"column,omitempty"`
}

// LintOutput is the lint payload.
type LintOutput struct {
	Files    []LintFile `json:"files" yaml:"files"`
	Errors   int        `json:"errors" yaml:"errors"`
	Warnings int        `json:"warnings" yaml:"warnings"`
}

// LintFile holds the findings for one file. Error is set when it did not load.
type LintFile struct {
	File        string           `json:"file" yaml:"file"`
	Diagnostics []DiagnosticInfo `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Error       string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// DiagnosticInfo is one lint finding.
type DiagnosticInfo struct {
	Rule     string `json:"rule" yaml:"rule"`
	Severity string `json:"severity" yaml:"severity"`
	Decision string `json:"decision,omitempty" yaml:"decision,omitempty"`
	Message  string `json:"message" yaml:"message"`
}
