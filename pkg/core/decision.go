package core

import "fmt"

// Decision is a single variability question. Its kind is fixed at
// construction; kind-specific fields are only accepted when the capability
// table allows them.
type Decision struct {
	id  string
	typ Type

	// Question is the human-readable prompt.
	Question string

	rng         Range
	cardinality *Cardinality
	rules       []*Rule
	ruleKeys    map[string]struct{}
	visibility  Condition
}

func newDecision(id string, typ Type) *Decision {
	return &Decision{
		id:       id,
		typ:      typ,
		ruleKeys: make(map[string]struct{}),
	}
}

// ID returns the unique decision id.
func (d *Decision) ID() string { return d.id }

// Type returns the decision type.
func (d *Decision) Type() Type { return d.typ }

// Range returns the value domain, or nil when none was set.
func (d *Decision) Range() Range { return d.rng }

// NumberRange returns the numeric interval of a NUMBER decision.
func (d *Decision) NumberRange() (NumberRange, bool) {
	r, ok := d.rng.(NumberRange)
	return r, ok
}

// Options returns the options of an ENUM decision.
func (d *Decision) Options() Options {
	opts, _ := d.rng.(Options)
	return opts
}

// SetRange attaches a value domain. The range kind must match the kind the
// decision type accepts.
func (d *Decision) SetRange(r Range) error {
	want := CapabilitiesOf(d.typ).Range
	if r == nil {
		d.rng = nil
		return nil
	}
	if want == RangeNone || r.Kind() != want {
		return &LoadError{
			Kind:     ErrUnsupportedRangeOrCardinality,
			ID:       d.id,
			Value:    r.String(),
			Expected: fmt.Sprintf("%s for %s decision", want, d.typ),
		}
	}
	d.rng = r
	return nil
}

// Cardinality returns the cardinality of an ENUM decision.
func (d *Decision) Cardinality() (Cardinality, bool) {
	if d.cardinality == nil {
		return Cardinality{}, false
	}
	return *d.cardinality, true
}

// SetCardinality attaches a cardinality. Only ENUM decisions accept one.
func (d *Decision) SetCardinality(c Cardinality) error {
	if !CapabilitiesOf(d.typ).Cardinality {
		return &LoadError{
			Kind:     ErrUnsupportedRangeOrCardinality,
			ID:       d.id,
			Value:    c.String(),
			Expected: fmt.Sprintf("no cardinality for %s decision", d.typ),
		}
	}
	d.cardinality = &c
	return nil
}

// Rules returns the rules owned by the decision in insertion order.
func (d *Decision) Rules() []*Rule {
	return d.rules
}

// AddRules attaches rules, skipping ones already present.
func (d *Decision) AddRules(rules ...*Rule) {
	for _, r := range rules {
		if r == nil {
			continue
		}
		key := r.String()
		if _, ok := d.ruleKeys[key]; ok {
			continue
		}
		d.ruleKeys[key] = struct{}{}
		d.rules = append(d.rules, r)
	}
}

// Visibility returns the visibility condition. It is True unless set.
func (d *Decision) Visibility() Condition {
	if d.visibility == nil {
		return True
	}
	return d.visibility
}

// SetVisibility replaces the visibility condition; nil restores True.
func (d *Decision) SetVisibility(c Condition) {
	d.visibility = c
}

func (d *Decision) String() string {
	return fmt.Sprintf("%s(%s)", d.typ, d.id)
}
