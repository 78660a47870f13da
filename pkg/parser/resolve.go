package parser

import (
	"fmt"

	"github.com/leapstack-labs/dopler/pkg/core"
)

// resolver checks parsed nodes against a decision model. It never mutates
// its input; rewritten nodes are fresh values.
type resolver struct {
	model *core.DecisionModel
	owner *core.Decision // nil for visibility conditions
}

// decision resolves id or returns a *core.ReferenceError.
func (r *resolver) decision(id string) (*core.Decision, error) {
	return r.model.Resolve(id)
}

// option resolves id.option to an ENUM decision holding that option.
func (r *resolver) option(id, option string) (*core.Decision, error) {
	d, err := r.decision(id)
	if err != nil {
		return nil, err
	}
	if d.Type() != core.TypeEnum {
		return nil, &core.ReferenceError{ID: id, Option: option, Reason: fmt.Sprintf("%s decision has no options", d.Type())}
	}
	if !d.Options().Contains(option) {
		return nil, &core.ReferenceError{ID: id, Option: option, Reason: "no such option"}
	}
	return d, nil
}

// condition validates c and every sub-condition.
func (r *resolver) condition(c core.Condition) error {
	var err error
	core.WalkCondition(c, func(n core.Condition) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *core.IsTaken:
			_, err = r.decision(n.Decision)
		case *core.OptionSelected:
			_, err = r.option(n.Decision, n.Option)
		case *core.Compare:
			err = r.compare(n)
		}
		return err == nil
	})
	return err
}

func (r *resolver) compare(c *core.Compare) error {
	d, err := r.decision(c.Decision)
	if err != nil {
		return err
	}
	if c.Op.Ordered() && d.Type() != core.TypeNumber {
		return &TypeError{Decision: d.ID(), Type: d.Type(), Message: fmt.Sprintf("operator %s needs a NUMBER decision", c.Op)}
	}
	return r.literal(d, c.Value)
}

// literal checks that v can be a value of d.
func (r *resolver) literal(d *core.Decision, v core.Literal) error {
	switch d.Type() {
	case core.TypeBoolean:
		if v.Kind != core.LiteralBool {
			return &TypeError{Decision: d.ID(), Type: d.Type(), Message: fmt.Sprintf("%s is not true or false", v)}
		}
	case core.TypeNumber:
		if v.Kind != core.LiteralNumber {
			return &TypeError{Decision: d.ID(), Type: d.Type(), Message: fmt.Sprintf("%s is not a number", v)}
		}
	case core.TypeString:
		if v.Kind != core.LiteralString {
			return &TypeError{Decision: d.ID(), Type: d.Type(), Message: fmt.Sprintf("%s is not a string", v)}
		}
	case core.TypeEnum:
		if v.Kind != core.LiteralString {
			return &TypeError{Decision: d.ID(), Type: d.Type(), Message: fmt.Sprintf("%s is not an option", v)}
		}
		if !d.Options().Contains(v.Text) {
			return &core.ReferenceError{ID: d.ID(), Option: v.Text, Reason: "no such option"}
		}
	default:
		panic(fmt.Sprintf("parser: unhandled decision type %v", d.Type()))
	}
	return nil
}

// rule resolves every part of a parsed rule and returns the resolved copy.
func (r *resolver) rule(rule *core.Rule) (*core.Rule, error) {
	if err := r.condition(rule.Condition); err != nil {
		return nil, err
	}
	actions := make([]core.Action, 0, len(rule.Actions))
	for _, a := range rule.Actions {
		resolved, err := r.action(a)
		if err != nil {
			return nil, err
		}
		actions = append(actions, resolved)
	}
	return &core.Rule{Condition: rule.Condition, Actions: actions}, nil
}

// action resolves one action. Select, Deselect, Allow and Disallow written
// with a bare name first try the owner's own options, so `select y` in the
// rules of ENUM decision B means `select B.y`.
func (r *resolver) action(a core.Action) (core.Action, error) {
	switch a := a.(type) {
	case *core.SetValue:
		d, err := r.decision(a.Decision)
		if err != nil {
			return nil, err
		}
		if err := r.literal(d, a.Value); err != nil {
			return nil, err
		}
		return a, nil

	case *core.Select:
		id, opt, err := r.target(a.Decision, a.Option, false)
		if err != nil {
			return nil, err
		}
		return &core.Select{Decision: id, Option: opt}, nil

	case *core.Deselect:
		id, opt, err := r.target(a.Decision, a.Option, false)
		if err != nil {
			return nil, err
		}
		return &core.Deselect{Decision: id, Option: opt}, nil

	case *core.Allow:
		id, opt, err := r.target(a.Decision, a.Option, true)
		if err != nil {
			return nil, err
		}
		return &core.Allow{Decision: id, Option: opt}, nil

	case *core.Disallow:
		id, opt, err := r.target(a.Decision, a.Option, true)
		if err != nil {
			return nil, err
		}
		return &core.Disallow{Decision: id, Option: opt}, nil

	default:
		panic(fmt.Sprintf("parser: unhandled action %T", a))
	}
}

// target resolves the reference of a selection-style action. needOption is
// set for allow and disAllow, which only make sense on an option.
func (r *resolver) target(id, option string, needOption bool) (string, string, error) {
	if option != "" {
		if _, err := r.option(id, option); err != nil {
			return "", "", err
		}
		return id, option, nil
	}

	if r.owner != nil && r.owner.Type() == core.TypeEnum && r.owner.Options().Contains(id) {
		return r.owner.ID(), id, nil
	}

	d, err := r.decision(id)
	if err != nil {
		return "", "", err
	}
	if needOption {
		return "", "", &core.ReferenceError{ID: d.ID(), Reason: "an option reference is required"}
	}
	return d.ID(), "", nil
}
