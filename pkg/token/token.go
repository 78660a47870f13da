// Package token defines the token types for the DOPLER rule and condition
// grammar.
//
// Keywords are only recognized as whole identifiers, so a decision named
// "verify_motif" never produces an IF token.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // decision or option identifier
	NUMBER // 12, 4.5, 1e3
	STRING // 'text'

	// Operators
	ASSIGN    // =
	EQ        // ==
	NE        // !=
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	AND       // &&
	OR        // ||
	NOT       // !
	MINUS     // -
	DOT       // .
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }

	// Keywords
	IF
	TRUE
	FALSE
	SELECT
	DESELECT
	ISTAKEN
	ALLOW
	DISALLOW
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// IsKeyword reports whether the token type is a reserved word.
func (t TokenType) IsKeyword() bool {
	return t >= IF && t <= DISALLOW
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	ASSIGN:    "=",
	EQ:        "==",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	AND:       "&&",
	OR:        "||",
	NOT:       "!",
	MINUS:     "-",
	DOT:       ".",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",

	IF:       "if",
	TRUE:     "true",
	FALSE:    "false",
	SELECT:   "select",
	DESELECT: "deselect",
	ISTAKEN:  "isTaken",
	ALLOW:    "allow",
	DISALLOW: "disAllow",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"if":       IF,
	"true":     TRUE,
	"false":    FALSE,
	"select":   SELECT,
	"deselect": DESELECT,
	"istaken":  ISTAKEN,
	"allow":    ALLOW,
	"disallow": DISALLOW,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
// Matching is case-insensitive.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return IDENT
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position // first byte of the token
	End     Position // first byte after the token
	// Quoted is set for identifiers written as `"..."`; they never match keywords.
	Quoted bool
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT, NUMBER:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	case STRING:
		return fmt.Sprintf("STRING '%s'", t.Literal)
	default:
		return fmt.Sprintf("%q", t.Type.String())
	}
}
