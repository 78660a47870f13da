package core

import (
	"strconv"
	"strings"
)

// Range is the legal value domain of a decision: either a NumberRange or
// an Options list.
type Range interface {
	// Kind returns the range kind, matched against the capability table.
	Kind() RangeKind
	String() string
	rangeNode()
}

// NumberRange is a closed numeric interval [Low, High].
type NumberRange struct {
	Low  float64
	High float64
}

func (NumberRange) rangeNode() {}

// Kind implements Range.
func (NumberRange) Kind() RangeKind { return RangeNumeric }

// Contains reports whether v lies within the interval.
func (r NumberRange) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

func (r NumberRange) String() string {
	return formatNumber(r.Low) + " - " + formatNumber(r.High)
}

// Options is an ordered list of distinct enumeration options.
type Options []string

func (Options) rangeNode() {}

// Kind implements Range.
func (Options) Kind() RangeKind { return RangeOptions }

// Contains reports whether option is one of the options.
func (o Options) Contains(option string) bool {
	for _, opt := range o {
		if opt == option {
			return true
		}
	}
	return false
}

func (o Options) String() string {
	return strings.Join(o, " | ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
