package parser

import (
	"fmt"

	"github.com/leapstack-labs/dopler/pkg/core"
)

// Condition parsing using a Pratt parser.
//
// Precedence levels:
//
//	precNone = 0
//	precOr   = 1  (||)
//	precAnd  = 2  (&&)
//	precNot  = 3  (!)
//
// Comparisons are not infix operators here: a comparison always has a
// decision reference on its left, so it is parsed as part of the primary.

const (
	precNone = iota
	precOr
	precAnd
	precNot
)

var compareOps = map[TokenType]core.CompareOp{
	TOKEN_EQ: core.OpEq,
	TOKEN_NE: core.OpNe,
	TOKEN_LT: core.OpLt,
	TOKEN_LE: core.OpLe,
	TOKEN_GT: core.OpGt,
	TOKEN_GE: core.OpGe,
}

// parseCondition parses a full condition.
func (p *Parser) parseCondition() core.Condition {
	return p.parseConditionWithPrecedence(precNone + 1)
}

// parseConditionWithPrecedence implements Pratt parsing.
func (p *Parser) parseConditionWithPrecedence(minPrecedence int) core.Condition {
	left := p.parsePrefixCondition()
	if left == nil {
		return nil
	}

	// Both binary operators are left-associative.
	for {
		prec := infixPrecedence(p.token.Type)
		if prec == precNone || prec < minPrecedence {
			break
		}
		op := p.token.Type
		p.nextToken()

		right := p.parseConditionWithPrecedence(prec + 1)
		if right == nil {
			return nil
		}
		if op == TOKEN_AND {
			left = &core.And{Left: left, Right: right}
		} else {
			left = &core.Or{Left: left, Right: right}
		}
	}

	return left
}

func infixPrecedence(t TokenType) int {
	switch t {
	case TOKEN_OR:
		return precOr
	case TOKEN_AND:
		return precAnd
	default:
		return precNone
	}
}

// parsePrefixCondition parses negations and primaries.
func (p *Parser) parsePrefixCondition() core.Condition {
	if p.match(TOKEN_NOT) {
		operand := p.parseConditionWithPrecedence(precNot)
		if operand == nil {
			return nil
		}
		return &core.Not{Operand: operand}
	}
	return p.parsePrimaryCondition()
}

// parsePrimaryCondition parses:
//
//	'true' | 'false' | '(' condition ')' | 'isTaken' '(' ref ')' | ref [cmpop literal]
func (p *Parser) parsePrimaryCondition() core.Condition {
	switch p.token.Type {
	case TOKEN_TRUE:
		p.nextToken()
		return core.True

	case TOKEN_FALSE:
		p.nextToken()
		return &core.BoolLiteral{Value: false}

	case TOKEN_LPAREN:
		p.nextToken()
		inner := p.parseCondition()
		if inner == nil || !p.expect(TOKEN_RPAREN) {
			return nil
		}
		return inner

	case TOKEN_ISTAKEN:
		p.nextToken()
		if !p.expect(TOKEN_LPAREN) {
			return nil
		}
		r, ok := p.parseRef()
		if !ok || !p.expect(TOKEN_RPAREN) {
			return nil
		}
		return refCondition(r)

	case TOKEN_IDENT:
		r, ok := p.parseRef()
		if !ok {
			return nil
		}
		op, isCompare := compareOps[p.token.Type]
		if !isCompare {
			return refCondition(r)
		}
		if r.option != "" {
			p.addError(fmt.Sprintf("cannot compare option reference %s.%s", r.decision, r.option))
			return nil
		}
		p.nextToken()
		value, ok := p.parseLiteral()
		if !ok {
			return nil
		}
		return &core.Compare{Decision: r.decision, Op: op, Value: value}

	default:
		p.addError(fmt.Sprintf(ErrExpectedCondition, p.token))
		return nil
	}
}

// refCondition turns a bare reference into a condition: `A` tests that A is
// taken and `A.x` tests that option x of A is selected.
func refCondition(r ref) core.Condition {
	if r.option != "" {
		return &core.OptionSelected{Decision: r.decision, Option: r.option}
	}
	return &core.IsTaken{Decision: r.decision}
}
