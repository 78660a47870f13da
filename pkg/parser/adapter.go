package parser

import (
	"strings"

	"github.com/leapstack-labs/dopler/pkg/core"
)

// ConditionParser parses VISIBILITY cells against a model.
type ConditionParser struct {
	model *core.DecisionModel
}

// NewConditionParser creates a condition parser resolving against model.
func NewConditionParser(model *core.DecisionModel) *ConditionParser {
	return &ConditionParser{model: model}
}

// Parse parses and resolves a condition. Blank text is core.True.
func (cp *ConditionParser) Parse(text string) (core.Condition, error) {
	if strings.TrimSpace(text) == "" {
		return core.True, nil
	}

	cond, err := ParseCondition(text)
	if err != nil {
		return nil, err
	}

	r := &resolver{model: cp.model}
	if err := r.condition(cond); err != nil {
		return nil, err
	}
	return cond, nil
}

// RulesParser parses RULES clause fragments against a model.
type RulesParser struct {
	model *core.DecisionModel
}

// NewRulesParser creates a rules parser resolving against model.
func NewRulesParser(model *core.DecisionModel) *RulesParser {
	return &RulesParser{model: model}
}

// Parse parses each fragment produced by SplitClauses into a resolved rule
// owned by owner, preserving order.
func (rp *RulesParser) Parse(owner *core.Decision, fragments []string) ([]*core.Rule, error) {
	r := &resolver{model: rp.model, owner: owner}

	rules := make([]*core.Rule, 0, len(fragments))
	for _, fragment := range fragments {
		parsed, err := ParseClause(fragment)
		if err != nil {
			return nil, err
		}
		rule, err := r.rule(parsed)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// ParseCondition runs the syntax pass over a condition without resolving
// its references.
func ParseCondition(text string) (core.Condition, error) {
	p := NewParser(text)
	cond := p.parseCondition()
	p.expectEOF()
	if err := p.err(); err != nil {
		return nil, err
	}
	return cond, nil
}

// ParseClause runs the syntax pass over exactly one rule clause without
// resolving its references.
func ParseClause(text string) (*core.Rule, error) {
	p := NewParser(text)
	rule := p.parseClause()
	p.expectEOF()
	if err := p.err(); err != nil {
		return nil, err
	}
	return rule, nil
}
