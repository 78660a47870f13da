package core

import (
	"fmt"
	"strings"
)

// errorClass is a sentinel that may belong to a broader class.
type errorClass struct {
	msg    string
	parent error
}

func (e *errorClass) Error() string { return e.msg }

func (e *errorClass) Unwrap() error { return e.parent }

// Error classes. Match them with errors.Is.
var (
	// ErrUnsupportedVariabilityType is the class of every type, range and
	// cardinality violation.
	ErrUnsupportedVariabilityType error = &errorClass{msg: "unsupported variability type"}

	// ErrUnsupportedType reports a TYPE tag outside BOOLEAN, ENUM, NUMBER, STRING.
	ErrUnsupportedType error = &errorClass{msg: "unsupported decision type", parent: ErrUnsupportedVariabilityType}

	// ErrUnsupportedRangeOrCardinality reports a malformed range or cardinality,
	// or one attached to a decision type that cannot carry it.
	ErrUnsupportedRangeOrCardinality error = &errorClass{msg: "unsupported range or cardinality", parent: ErrUnsupportedVariabilityType}

	// ErrUnresolvedReference reports an id that does not resolve to a decision.
	ErrUnresolvedReference error = &errorClass{msg: "unresolved reference"}

	// ErrDuplicateDecision reports an id registered twice.
	ErrDuplicateDecision error = &errorClass{msg: "duplicate decision id", parent: ErrUnresolvedReference}

	// ErrMalformedExpression reports a RULES or VISIBILITY cell that does not parse.
	ErrMalformedExpression error = &errorClass{msg: "malformed expression"}

	// ErrMalformedRecord reports tabular input that cannot be read as records.
	ErrMalformedRecord error = &errorClass{msg: "malformed record"}

	// ErrIO reports a source that cannot be read.
	ErrIO error = &errorClass{msg: "i/o failure"}

	// ErrUnsupportedFormat reports a serialization format the loader cannot read.
	ErrUnsupportedFormat error = &errorClass{msg: "unsupported format"}
)

// LoadError is the single error surfaced by a failed deserialization. It
// locates the offending row without re-parsing the input.
type LoadError struct {
	Kind     error  // one of the Err* classes
	Row      int    // 1-based data row, 0 when not tied to a row
	ID       string // decision id, if known
	Column   string // offending column
	Value    string // offending value
	Expected string // constraint the value violated
	Err      error  // underlying cause
}

func (e *LoadError) Error() string {
	var b strings.Builder
	if e.Row > 0 {
		fmt.Fprintf(&b, "row %d", e.Row)
		if e.ID != "" {
			fmt.Fprintf(&b, " (decision %q)", e.ID)
		}
		b.WriteString(": ")
	} else if e.ID != "" {
		fmt.Fprintf(&b, "decision %q: ", e.ID)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, "%s: ", e.Column)
	}
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	} else {
		b.WriteString("load failed")
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, " (expected %s)", e.Expected)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the class and the cause to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// ReferenceError reports an identifier that does not resolve against the model.
type ReferenceError struct {
	ID     string // referenced decision id
	Option string // referenced option, when the decision resolved but the option did not
	Reason string
}

func (e *ReferenceError) Error() string {
	ref := e.ID
	if e.Option != "" {
		ref = e.ID + "." + e.Option
	}
	if e.Reason != "" {
		return fmt.Sprintf("unresolved reference %q: %s", ref, e.Reason)
	}
	return fmt.Sprintf("unresolved reference %q", ref)
}

// Unwrap makes errors.Is(err, ErrUnresolvedReference) hold.
func (e *ReferenceError) Unwrap() error { return ErrUnresolvedReference }
