package parser

import "github.com/leapstack-labs/dopler/pkg/token"

// TokenType is an alias for token.TokenType.
type TokenType = token.TokenType

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position

// LookupIdent is re-exported from token package.
var LookupIdent = token.LookupIdent

//nolint:revive // TOKEN_* names mirror the token package constants
const (
	// Special tokens
	TOKEN_EOF     = token.EOF
	TOKEN_ILLEGAL = token.ILLEGAL

	// Literals
	TOKEN_IDENT  = token.IDENT
	TOKEN_NUMBER = token.NUMBER
	TOKEN_STRING = token.STRING

	// Operators
	TOKEN_ASSIGN    = token.ASSIGN
	TOKEN_EQ        = token.EQ
	TOKEN_NE        = token.NE
	TOKEN_LT        = token.LT
	TOKEN_GT        = token.GT
	TOKEN_LE        = token.LE
	TOKEN_GE        = token.GE
	TOKEN_AND       = token.AND
	TOKEN_OR        = token.OR
	TOKEN_NOT       = token.NOT
	TOKEN_MINUS     = token.MINUS
	TOKEN_DOT       = token.DOT
	TOKEN_COMMA     = token.COMMA
	TOKEN_SEMICOLON = token.SEMICOLON
	TOKEN_LPAREN    = token.LPAREN
	TOKEN_RPAREN    = token.RPAREN
	TOKEN_LBRACE    = token.LBRACE
	TOKEN_RBRACE    = token.RBRACE

	// Keywords
	TOKEN_IF       = token.IF
	TOKEN_TRUE     = token.TRUE
	TOKEN_FALSE    = token.FALSE
	TOKEN_SELECT   = token.SELECT
	TOKEN_DESELECT = token.DESELECT
	TOKEN_ISTAKEN  = token.ISTAKEN
	TOKEN_ALLOW    = token.ALLOW
	TOKEN_DISALLOW = token.DISALLOW
)
