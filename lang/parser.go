/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lang

import (
	"strconv"
	"strings"
	"time"

	"github.com/rulego/condstream/arith"
	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/errs"
)

// Parse compiles rule text into an ast.Node per the expression grammar.
func Parse(text string) (ast.Node, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != EOF {
		return nil, p.errorf("unexpected trailing input", []string{"end of expression"})
	}
	return node, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token  { return p.tokens[p.pos] }
func (p *parser) peek2() Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(msg string, expected []string) error {
	t := p.peek()
	return &errs.SyntaxError{Message: msg, Position: t.Pos, Line: t.Line, Column: t.Column, Token: t.Literal, Expected: expected}
}

func (p *parser) expect(tt TokenType, expected string) (Token, error) {
	if p.peek().Type != tt {
		return Token{}, p.errorf("unexpected token", []string{expected})
	}
	return p.advance(), nil
}

// expression = orExpr ;
func (p *parser) parseExpression() (ast.Node, error) {
	return p.parseOr()
}

// orExpr = andExpr , { ("||" | "OR") , andExpr } ;
func (p *parser) parseOr() (ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == OR {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryNode(ast.OR, left, right)
	}
	return left, nil
}

// andExpr = condition , { ("&&" | "AND") , condition } ;
func (p *parser) parseAnd() (ast.Node, error) {
	left, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == AND {
		p.advance()
		right, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryNode(ast.AND, left, right)
	}
	return left, nil
}

var aggKinds = map[string]ast.AggKind{
	"avg": ast.Avg,
	"sum": ast.Sum,
	"max": ast.Max,
	"min": ast.Min,
}

// condition = aggCondition | simpleCondition | "(" , expression , ")" ;
func (p *parser) parseCondition() (ast.Node, error) {
	if p.peek().Type == LPAREN {
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, ")"); err != nil {
			return nil, err
		}
		return inner, nil
	}

	if p.peek().Type == IDENT {
		if kind, ok := aggKinds[strings.ToLower(p.peek().Literal)]; ok && p.peek2().Type == LPAREN {
			return p.parseAggCondition(kind)
		}
	}
	return p.parseSimpleCondition()
}

// aggCondition = aggType , "(" , ident , "," , timeWindow , ")" , op , threshold ;
func (p *parser) parseAggCondition(kind ast.AggKind) (ast.Node, error) {
	p.advance() // aggType
	if _, err := p.expect(LPAREN, "("); err != nil {
		return nil, err
	}
	metric, err := p.expect(IDENT, "metric name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COMMA, ","); err != nil {
		return nil, err
	}
	window, err := p.parseTimeWindow()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, ")"); err != nil {
		return nil, err
	}
	op, err := p.parseOp()
	if err != nil {
		return nil, err
	}
	threshold, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	return ast.NewConditionNode(ast.Condition{
		Metric: metric.Literal, Op: op, Threshold: threshold,
		IsAggregation: true, AggKind: kind, Window: window,
	}), nil
}

// simpleCondition = ident , op , threshold ;
func (p *parser) parseSimpleCondition() (ast.Node, error) {
	metric, err := p.expect(IDENT, "metric name")
	if err != nil {
		return nil, err
	}
	op, err := p.parseOp()
	if err != nil {
		return nil, err
	}
	threshold, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	return ast.NewConditionNode(ast.Condition{Metric: metric.Literal, Op: op, Threshold: threshold}), nil
}

// timeWindow = NUMBER , ("s" | "m" | "h") (unit case-insensitive) ;
func (p *parser) parseTimeWindow() (time.Duration, error) {
	num, err := p.expect(NUMBER, "time window magnitude")
	if err != nil {
		return 0, err
	}
	unit, err := p.expect(IDENT, "time unit (s, m, or h)")
	if err != nil {
		return 0, err
	}
	magnitude, err := strconv.ParseFloat(num.Literal, 64)
	if err != nil {
		return 0, &errs.SyntaxError{Message: "invalid time window magnitude", Token: num.Literal, Position: num.Pos}
	}
	var unitDuration time.Duration
	switch strings.ToLower(unit.Literal) {
	case "s":
		unitDuration = time.Second
	case "m":
		unitDuration = time.Minute
	case "h":
		unitDuration = time.Hour
	default:
		return 0, &errs.SyntaxError{Message: "unknown time unit " + unit.Literal, Token: unit.Literal, Position: unit.Pos, Expected: []string{"s", "m", "h"}}
	}
	return time.Duration(magnitude * float64(unitDuration)), nil
}

// op = ">" | ">=" | "<" | "<=" | "==" | "!=" ;
func (p *parser) parseOp() (ast.CompareOp, error) {
	t := p.peek()
	switch t.Type {
	case GT, GE, LT, LE, EQ, NOT_EQ:
		p.advance()
		return ast.CompareOp(t.Literal), nil
	default:
		return "", p.errorf("expected a comparison operator", []string{">", ">=", "<", "<=", "==", "!="})
	}
}

// arith = mulDiv , { ("+" | "-") , mulDiv } ;
func (p *parser) parseArith() (arith.Term, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.Type != PLUS && t.Type != MINUS {
			return left, nil
		}
		p.advance()
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = arith.Binary{Op: arith.Op(t.Literal[0]), Left: left, Right: right}
	}
}

// mulDiv = primary , { ("*" | "/") , primary } ;
func (p *parser) parseMulDiv() (arith.Term, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.Type != ASTERISK && t.Type != SLASH {
			return left, nil
		}
		p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = arith.Binary{Op: arith.Op(t.Literal[0]), Left: left, Right: right}
	}
}

// primary = NUMBER | ident | "(" , arith , ")" ;
func (p *parser) parsePrimary() (arith.Term, error) {
	t := p.peek()
	switch t.Type {
	case NUMBER:
		p.advance()
		v, err := strconv.ParseFloat(t.Literal, 64)
		if err != nil {
			return nil, &errs.SyntaxError{Message: "invalid number", Token: t.Literal, Position: t.Pos}
		}
		return arith.Constant{Value: v}, nil
	case IDENT:
		p.advance()
		return arith.Variable{Name: t.Literal}, nil
	case LPAREN:
		p.advance()
		inner, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, ")"); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errorf("expected a number, identifier, or '('", []string{"NUMBER", "ident", "("})
	}
}
