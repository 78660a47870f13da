package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dopler/pkg/core"
)

// Rule clause parsing.
//
//	clause → 'if' condition (block | action)
//	       | action (';'? action)* 'if' condition
//	block  → '{' (action ';'?)* '}'
//
// A RULES cell holds any number of clauses back to back. SplitClauses finds
// their boundaries with the same parser, so an identifier that merely
// contains "if" never splits a clause.

// SplitClauses splits a RULES cell into one source fragment per clause.
// Blank text yields no fragments.
func SplitClauses(text string) ([]string, error) {
	p := NewParser(text)

	var fragments []string
	for !p.check(TOKEN_EOF) {
		if p.match(TOKEN_SEMICOLON) {
			continue
		}
		start := p.token.Pos.Offset
		if p.parseClause() == nil || p.failed() {
			return nil, p.err()
		}
		end := p.prev.End.Offset
		fragments = append(fragments, trimClause(text[start:end]))
	}

	if p.failed() {
		return nil, p.err()
	}
	return fragments, nil
}

// trimClause drops the optional terminator so fragments are stable across
// "select y if A" and "select y if A;".
func trimClause(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "; \t\r\n")
}

// parseClause parses one rule clause.
func (p *Parser) parseClause() *core.Rule {
	if p.match(TOKEN_IF) {
		return p.parseLeadingIf()
	}
	return p.parseTrailingIf()
}

// parseLeadingIf parses: 'if' condition (block | action)
// The IF token has already been consumed.
func (p *Parser) parseLeadingIf() *core.Rule {
	cond := p.parseCondition()
	if cond == nil {
		return nil
	}

	var actions []core.Action
	if p.match(TOKEN_LBRACE) {
		for !p.check(TOKEN_RBRACE) && !p.check(TOKEN_EOF) && !p.failed() {
			a := p.parseAction()
			if a == nil {
				return nil
			}
			actions = append(actions, a)
			p.match(TOKEN_SEMICOLON)
		}
		if !p.expect(TOKEN_RBRACE) {
			return nil
		}
		if len(actions) == 0 {
			p.errors = append(p.errors, &ParseError{Pos: p.prev.Pos, Message: "rule block has no actions"})
			return nil
		}
	} else {
		a := p.parseAction()
		if a == nil {
			return nil
		}
		actions = append(actions, a)
	}
	p.match(TOKEN_SEMICOLON)

	return &core.Rule{Condition: cond, Actions: actions}
}

// parseTrailingIf parses: action (';'? action)* 'if' condition
func (p *Parser) parseTrailingIf() *core.Rule {
	var actions []core.Action
	for {
		a := p.parseAction()
		if a == nil {
			return nil
		}
		actions = append(actions, a)
		p.match(TOKEN_SEMICOLON)

		if p.check(TOKEN_IF) {
			break
		}
		if p.check(TOKEN_EOF) {
			p.addError(ErrMissingIf)
			return nil
		}
	}
	p.nextToken() // consume IF

	cond := p.parseCondition()
	if cond == nil {
		return nil
	}
	p.match(TOKEN_SEMICOLON)

	return &core.Rule{Condition: cond, Actions: actions}
}

// parseAction parses:
//
//	'select' ref | 'deselect' ref | 'allow' '(' ref ')' | 'disAllow' '(' ref ')' | ref '=' literal
func (p *Parser) parseAction() core.Action {
	switch p.token.Type {
	case TOKEN_SELECT, TOKEN_DESELECT:
		deselect := p.check(TOKEN_DESELECT)
		p.nextToken()
		r, ok := p.parseRef()
		if !ok {
			return nil
		}
		if deselect {
			return &core.Deselect{Decision: r.decision, Option: r.option}
		}
		return &core.Select{Decision: r.decision, Option: r.option}

	case TOKEN_ALLOW, TOKEN_DISALLOW:
		disallow := p.check(TOKEN_DISALLOW)
		p.nextToken()
		if !p.expect(TOKEN_LPAREN) {
			return nil
		}
		r, ok := p.parseRef()
		if !ok || !p.expect(TOKEN_RPAREN) {
			return nil
		}
		if disallow {
			return &core.Disallow{Decision: r.decision, Option: r.option}
		}
		return &core.Allow{Decision: r.decision, Option: r.option}

	case TOKEN_IDENT:
		start := p.token
		r, ok := p.parseRef()
		if !ok {
			return nil
		}
		if r.option != "" {
			p.errors = append(p.errors, &ParseError{
				Pos:     start.Pos,
				Message: fmt.Sprintf("cannot assign to option reference %s.%s", r.decision, r.option),
			})
			return nil
		}
		if !p.expect(TOKEN_ASSIGN) {
			return nil
		}
		value, ok := p.parseLiteral()
		if !ok {
			return nil
		}
		return &core.SetValue{Decision: r.decision, Value: value}

	default:
		p.addError(fmt.Sprintf(ErrExpectedAction, p.token))
		return nil
	}
}
