// Package parser reads the DOPLER rule and condition language and resolves it
// against a decision model.
//
// # Usage
//
//	cond, err := parser.NewConditionParser(model).Parse("isTaken(A) && !B")
//
//	fragments, err := parser.SplitClauses("select y if A; if C { B = true; }")
//	rules, err := parser.NewRulesParser(model).Parse(owner, fragments)
//
// # Grammar Overview
//
//	condition  → or
//	or         → and ('||' and)*
//	and        → unary ('&&' unary)*
//	unary      → '!' unary | primary
//	primary    → 'true' | 'false' | '(' condition ')'
//	           | 'isTaken' '(' ref ')'
//	           | ref [cmpop literal]
//	ref        → IDENT ['.' IDENT]
//	literal    → 'true' | 'false' | NUMBER | '-' NUMBER | STRING | IDENT
//	cmpop      → '==' | '!=' | '<' | '<=' | '>' | '>='
//
//	clause     → 'if' condition (block | action)
//	           | action (';'? action)* 'if' condition
//	block      → '{' (action ';'?)* '}'
//	action     → 'select' ref | 'deselect' ref
//	           | 'allow' '(' ref ')' | 'disAllow' '(' ref ')'
//	           | ref '=' literal
//
// Keywords are case-insensitive and only recognized as whole identifiers.
// Identifiers that clash with keywords or contain spaces are written in double
// quotes: "select"."light blue".
//
// Parsing is two-stage. The syntax pass builds core nodes carrying raw names;
// the resolver then checks every name against the model and rewrites the
// owner-option shorthand. See each file for details.
package parser

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/dopler/pkg/core"
)

// Parser is the syntax pass over one rule or condition text.
type Parser struct {
	lexer  *Lexer
	token  Token // current token
	peek   Token // lookahead token
	prev   Token // last consumed token
	errors []error
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.prev = p.token
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, quote(t)))
	return false
}

// addError adds a parse error at the current token. ILLEGAL tokens already
// carry a lexer error, so no second error is recorded for them.
func (p *Parser) addError(msg string) {
	if p.check(TOKEN_ILLEGAL) {
		return
	}
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// failed reports whether any lexical or syntax error has been seen.
func (p *Parser) failed() bool {
	return len(p.errors) > 0 || len(p.lexer.Errors) > 0
}

// err returns the error that occurs first in the input, or nil.
func (p *Parser) err() error {
	var first error
	firstOffset := -1
	consider := func(err error, pos Position) {
		if firstOffset < 0 || pos.Offset < firstOffset {
			first, firstOffset = err, pos.Offset
		}
	}
	for _, e := range p.lexer.Errors {
		if le, ok := e.(*LexError); ok {
			consider(le, le.Pos)
		}
	}
	for _, e := range p.errors {
		if pe, ok := e.(*ParseError); ok {
			consider(pe, pe.Pos)
		}
	}
	return first
}

// expectEOF reports trailing input after a complete expression.
func (p *Parser) expectEOF() {
	if !p.check(TOKEN_EOF) && !p.failed() {
		p.addError(fmt.Sprintf(ErrTrailingInput, p.token))
	}
}

func quote(t TokenType) string {
	if t == TOKEN_IDENT {
		return "identifier"
	}
	return strconv.Quote(t.String())
}

// ---------- References and literals ----------

// ref is a parsed `decision` or `decision.option` reference.
type ref struct {
	decision string
	option   string
	pos      Position
}

// parseRef parses: IDENT ['.' (IDENT | NUMBER)]
//
// Options may be numeric (Size.2), so a number is accepted after the dot.
func (p *Parser) parseRef() (ref, bool) {
	r := ref{pos: p.token.Pos}
	if !p.check(TOKEN_IDENT) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, "identifier"))
		return r, false
	}
	r.decision = p.token.Literal
	p.nextToken()

	if p.match(TOKEN_DOT) {
		if !p.check(TOKEN_IDENT) && !p.check(TOKEN_NUMBER) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, "option name"))
			return r, false
		}
		r.option = p.token.Literal
		p.nextToken()
	}
	return r, true
}

// parseLiteral parses: 'true' | 'false' | NUMBER | '-' NUMBER | STRING | IDENT
//
// A bare identifier is read as a string; against an ENUM decision it names
// an option.
func (p *Parser) parseLiteral() (core.Literal, bool) {
	switch p.token.Type {
	case TOKEN_TRUE, TOKEN_FALSE:
		v := p.check(TOKEN_TRUE)
		p.nextToken()
		return core.BoolValue(v), true

	case TOKEN_MINUS:
		p.nextToken()
		if !p.check(TOKEN_NUMBER) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, "number"))
			return core.Literal{}, false
		}
		n, ok := p.parseNumber()
		return core.NumberValue(-n), ok

	case TOKEN_NUMBER:
		n, ok := p.parseNumber()
		return core.NumberValue(n), ok

	case TOKEN_STRING, TOKEN_IDENT:
		v := p.token.Literal
		p.nextToken()
		return core.StringValue(v), true

	default:
		p.addError(fmt.Sprintf(ErrExpectedLiteral, p.token))
		return core.Literal{}, false
	}
}

func (p *Parser) parseNumber() (float64, bool) {
	n, err := strconv.ParseFloat(p.token.Literal, 64)
	if err != nil {
		p.addError(fmt.Sprintf(ErrInvalidNumber, p.token.Literal))
		return 0, false
	}
	p.nextToken()
	return n, true
}
