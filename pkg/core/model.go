package core

import (
	"fmt"
	"iter"
)

// InlineSource is the SourceFile of models deserialized from in-memory text.
const InlineSource = "inline"

// DecisionModel is an insertion-ordered, id-keyed registry of decisions.
// It is written by a single loader and must not be mutated concurrently.
type DecisionModel struct {
	// Name is the display name (the file name for file-based models)
	Name string
	// SourceFile is the absolute path of the source, or InlineSource
	SourceFile string

	order []*Decision
	byID  map[string]*Decision
}

// NewDecisionModel creates an empty model.
func NewDecisionModel(name string) *DecisionModel {
	return &DecisionModel{
		Name: name,
		byID: make(map[string]*Decision),
	}
}

// Add registers a decision. It fails if the id is already present.
func (m *DecisionModel) Add(d *Decision) error {
	if d == nil {
		return fmt.Errorf("add decision: nil decision")
	}
	if _, exists := m.byID[d.ID()]; exists {
		return &LoadError{Kind: ErrDuplicateDecision, ID: d.ID(), Column: "ID", Value: d.ID()}
	}
	m.byID[d.ID()] = d
	m.order = append(m.order, d)
	return nil
}

// Get returns the decision with the given id.
func (m *DecisionModel) Get(id string) (*Decision, bool) {
	d, ok := m.byID[id]
	return d, ok
}

// Resolve returns the decision with the given id or a *ReferenceError.
func (m *DecisionModel) Resolve(id string) (*Decision, error) {
	if d, ok := m.byID[id]; ok {
		return d, nil
	}
	return nil, &ReferenceError{ID: id, Reason: "no such decision"}
}

// Size returns the number of decisions.
func (m *DecisionModel) Size() int {
	return len(m.order)
}

// Decisions returns the decisions in insertion order. The slice is a copy.
func (m *DecisionModel) Decisions() []*Decision {
	out := make([]*Decision, len(m.order))
	copy(out, m.order)
	return out
}

// IDs returns the decision ids in insertion order.
func (m *DecisionModel) IDs() []string {
	ids := make([]string, len(m.order))
	for i, d := range m.order {
		ids[i] = d.ID()
	}
	return ids
}

// All iterates the decisions in insertion order.
func (m *DecisionModel) All() iter.Seq2[string, *Decision] {
	return func(yield func(string, *Decision) bool) {
		for _, d := range m.order {
			if !yield(d.ID(), d) {
				return
			}
		}
	}
}
