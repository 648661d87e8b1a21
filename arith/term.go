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

package arith

import (
	"github.com/rulego/condstream/errs"
)

// Op is a binary arithmetic operator.
type Op byte

const (
	Add Op = '+'
	Sub Op = '-'
	Mul Op = '*'
	Div Op = '/'
)

func (o Op) String() string {
	return string(rune(o))
}

// Term is one node of an arithmetic tree: a constant, a variable
// reference, or a binary operation over two sub-terms.
type Term interface {
	// Evaluate resolves the term to a number using r for any variable
	// references. It fails with *errs.UnresolvedVariableError or
	// *errs.DivisionByZeroError.
	Evaluate(r Resolver) (float64, error)
	// Variables returns the union of variable names referenced by the
	// subtree rooted at this term.
	Variables() map[string]struct{}
	// String renders the term back to its canonical textual form.
	String() string
}

// Constant is a literal numeric term.
type Constant struct {
	Value float64
}

func (c Constant) Evaluate(Resolver) (float64, error) { return c.Value, nil }

func (c Constant) Variables() map[string]struct{} { return map[string]struct{}{} }

func (c Constant) String() string { return formatFloat(c.Value) }

// Variable is a named term resolved at evaluation time.
type Variable struct {
	Name string
}

func (v Variable) Evaluate(r Resolver) (float64, error) {
	value, ok := r.Resolve(v.Name)
	if !ok {
		return 0, &errs.UnresolvedVariableError{Variable: v.Name}
	}
	return value, nil
}

func (v Variable) Variables() map[string]struct{} {
	return map[string]struct{}{v.Name: {}}
}

func (v Variable) String() string { return v.Name }

// Binary is a two-operand arithmetic operation.
type Binary struct {
	Op    Op
	Left  Term
	Right Term
}

func (b Binary) Evaluate(r Resolver) (float64, error) {
	left, err := b.Left.Evaluate(r)
	if err != nil {
		return 0, err
	}
	right, err := b.Right.Evaluate(r)
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case Add:
		return left + right, nil
	case Sub:
		return left - right, nil
	case Mul:
		return left * right, nil
	case Div:
		if right == 0 {
			return 0, &errs.DivisionByZeroError{}
		}
		return left / right, nil
	default:
		return 0, &errs.UnsupportedOperatorError{Operator: b.Op.String(), Context: "arithmetic threshold"}
	}
}

func (b Binary) Variables() map[string]struct{} {
	out := b.Left.Variables()
	for name := range b.Right.Variables() {
		out[name] = struct{}{}
	}
	return out
}

func (b Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}
