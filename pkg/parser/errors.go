package parser

import (
	"fmt"

	"github.com/leapstack-labs/dopler/pkg/core"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Unwrap classifies every syntax error as core.ErrMalformedExpression.
func (e *ParseError) Unwrap() error { return core.ErrMalformedExpression }

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Unwrap classifies every lexical error as core.ErrMalformedExpression.
func (e *LexError) Unwrap() error { return core.ErrMalformedExpression }

// TypeError reports a comparison or assignment whose literal does not fit the
// decision's type.
type TypeError struct {
	Decision string
	Type     core.Type
	Message  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error on %s decision %q: %s", e.Type, e.Decision, e.Message)
}

// Unwrap classifies type errors as core.ErrMalformedExpression.
func (e *TypeError) Unwrap() error { return core.ErrMalformedExpression }

// Common error messages
const (
	ErrUnexpectedToken    = "unexpected %s, expected %s"
	ErrUnterminatedString = "unterminated string literal"
	ErrUnterminatedIdent  = "unterminated quoted identifier"
	ErrInvalidNumber      = "invalid number literal %q"
	ErrIllegalCharacter   = "illegal character %q"
	ErrExpectedCondition  = "expected a condition, got %s"
	ErrExpectedAction     = "expected an action, got %s"
	ErrExpectedLiteral    = "expected a literal, got %s"
	ErrMissingIf          = "rule has actions but no 'if' condition"
	ErrTrailingInput      = "unexpected %s after end of expression"
)
