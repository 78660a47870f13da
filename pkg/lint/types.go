package lint

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dopler/internal/dag"
	"github.com/leapstack-labs/dopler/pkg/core"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a lint diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a model that cannot behave as written.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	default:
		return SeverityWarning, false
	}
}

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless: all context comes via the Check function parameter.
type RuleDef struct {
	ID          string    // Unique identifier, e.g., "DM01"
	Name        string    // Human-readable name, e.g., "dependency-cycle"
	Group       string    // Category, e.g., "structure", "range", "rule"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function

	Rationale   string // Why this rule exists
	BadExample  string // Model rows showing the anti-pattern
	GoodExample string // Model rows showing the correct pattern
}

// CheckFunc analyzes a model and returns diagnostics.
type CheckFunc func(ctx *Context) []Diagnostic

// Context is what a rule sees: the model and its dependency graph.
type Context struct {
	Model *core.DecisionModel
	Graph *dag.Graph
}

// NewContext builds the dependency graph for m.
func NewContext(m *core.DecisionModel) (*Context, error) {
	g, err := dag.FromModel(m)
	if err != nil {
		return nil, fmt.Errorf("build graph of %s: %w", m.Name, err)
	}
	return &Context{Model: m, Graph: g}, nil
}

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Message  string
	Decision string // the decision the finding is about
}

// =============================================================================
// RuleInfo
// =============================================================================

// RuleInfo provides metadata about a lint rule for documentation and listings.
type RuleInfo struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Group           string `json:"group" yaml:"group"`
	Description     string `json:"description" yaml:"description"`
	DefaultSeverity string `json:"default_severity" yaml:"default_severity"`
	Rationale       string `json:"rationale,omitempty" yaml:"rationale,omitempty"`
}

// Info returns the rule's metadata.
func (r RuleDef) Info() RuleInfo {
	return RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		DefaultSeverity: r.Severity.String(),
		Rationale:       r.Rationale,
	}
}
