package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Factory is the single place where decisions and their auxiliary values are
// constructed. Create one per loader; it holds no global state.
type Factory struct {
	tags map[string]Type
}

// NewFactory creates a factory that recognizes the four decision type tags.
func NewFactory() *Factory {
	f := &Factory{tags: make(map[string]Type, len(Types))}
	for _, t := range Types {
		f.tags[fold(t.String())] = t
	}
	return f
}

// fold case-folds s for tag comparison. Casers are stateful, so each call
// gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// ParseType resolves a type tag, ignoring case and surrounding whitespace.
func (f *Factory) ParseType(tag string) (Type, error) {
	if t, ok := f.tags[fold(strings.TrimSpace(tag))]; ok {
		return t, nil
	}
	return 0, &LoadError{
		Kind:     ErrUnsupportedType,
		Value:    tag,
		Expected: "one of BOOLEAN, ENUM, NUMBER, STRING",
	}
}

// NewDecision creates an empty decision of the type named by tag.
func (f *Factory) NewDecision(tag, id string) (*Decision, error) {
	t, err := f.ParseType(tag)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.ID = id
		}
		return nil, err
	}
	switch t {
	case TypeBoolean:
		return f.NewBooleanDecision(id), nil
	case TypeEnum:
		return f.NewEnumDecision(id), nil
	case TypeNumber:
		return f.NewNumberDecision(id), nil
	case TypeString:
		return f.NewStringDecision(id), nil
	default:
		panic(fmt.Sprintf("core: unhandled decision type %d", t))
	}
}

// NewBooleanDecision creates a BOOLEAN decision.
func (f *Factory) NewBooleanDecision(id string) *Decision { return newDecision(id, TypeBoolean) }

// NewEnumDecision creates an ENUM decision.
func (f *Factory) NewEnumDecision(id string) *Decision { return newDecision(id, TypeEnum) }

// NewNumberDecision creates a NUMBER decision.
func (f *Factory) NewNumberDecision(id string) *Decision { return newDecision(id, TypeNumber) }

// NewStringDecision creates a STRING decision.
func (f *Factory) NewStringDecision(id string) *Decision { return newDecision(id, TypeString) }

// NewNumberRange builds a closed interval from one or two numeric tokens.
// A single token yields the degenerate interval [x, x].
func (f *Factory) NewNumberRange(tokens []string) (NumberRange, error) {
	raw := strings.Join(tokens, " - ")
	if len(tokens) == 0 || len(tokens) > 2 {
		return NumberRange{}, &LoadError{
			Kind:     ErrUnsupportedRangeOrCardinality,
			Value:    raw,
			Expected: "one or two numeric bounds",
		}
	}

	bounds := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return NumberRange{}, &LoadError{
				Kind:     ErrUnsupportedRangeOrCardinality,
				Value:    tok,
				Expected: "a finite number",
				Err:      err,
			}
		}
		bounds[i] = v
	}

	r := NumberRange{Low: bounds[0], High: bounds[len(bounds)-1]}
	if r.Low > r.High {
		return NumberRange{}, &LoadError{
			Kind:     ErrUnsupportedRangeOrCardinality,
			Value:    raw,
			Expected: "lower bound <= upper bound",
		}
	}
	return r, nil
}

// NewEnumOptions builds an ordered option list. Duplicate and empty options
// are rejected.
func (f *Factory) NewEnumOptions(tokens []string) (Options, error) {
	if len(tokens) == 0 {
		return nil, &LoadError{
			Kind:     ErrUnsupportedRangeOrCardinality,
			Expected: "at least one option",
		}
	}
	seen := make(map[string]struct{}, len(tokens))
	opts := make(Options, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			return nil, &LoadError{
				Kind:     ErrUnsupportedRangeOrCardinality,
				Value:    strings.Join(tokens, "|"),
				Expected: "non-empty options",
			}
		}
		if _, dup := seen[tok]; dup {
			return nil, &LoadError{
				Kind:     ErrUnsupportedRangeOrCardinality,
				Value:    tok,
				Expected: "distinct options",
			}
		}
		seen[tok] = struct{}{}
		opts = append(opts, tok)
	}
	return opts, nil
}

// NewCardinality validates 0 <= min <= max.
func (f *Factory) NewCardinality(minimum, maximum int) (Cardinality, error) {
	c := Cardinality{Min: minimum, Max: maximum}
	if minimum < 0 || maximum < minimum {
		return Cardinality{}, &LoadError{
			Kind:     ErrUnsupportedRangeOrCardinality,
			Value:    c.String(),
			Expected: "0 <= min <= max",
		}
	}
	return c, nil
}

// NewModel creates an empty decision model.
func (f *Factory) NewModel(name string) *DecisionModel {
	return NewDecisionModel(name)
}
