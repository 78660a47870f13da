// Package core defines the shared language of the DOPLER loader.
//
// This package contains:
//   - Decision entities and their auxiliary values (ranges, cardinalities)
//   - The Factory that constructs them from type tags and raw tokens
//   - The DecisionModel container
//   - Condition and rule trees produced by pkg/parser
//   - The error taxonomy shared by the loader and the parser
//
// The Golden Rule: pkg/core imports ONLY pkg/token, golang.org/x/text and stdlib.
// All other packages depend on core, not the reverse.
package core
