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

package verdict

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rulego/condstream/ast"
)

// compareEnv is the expr-lang evaluation environment for a single
// comparison: the folded/sampled value on the left, the resolved
// threshold on the right.
type compareEnv struct {
	Value     float64
	Threshold float64
}

// exprSource holds the source text of the six comparison operators.
// There is exactly one program per operator, compiled once at package
// init and reused for every condition and every sample: unlike the
// teacher's condition.ExprCondition (which compiles one program per
// distinct rule expression, since SQL WHERE clauses vary per query),
// this engine's comparison operators are a fixed, closed set, so
// compiling per-operator instead of per-condition avoids recompiling
// expr programs on every evaluation.
var exprSource = map[ast.CompareOp]string{
	ast.GT: "Value > Threshold",
	ast.GE: "Value >= Threshold",
	ast.LT: "Value < Threshold",
	ast.LE: "Value <= Threshold",
	ast.EQ: "Value == Threshold",
	ast.NE: "Value != Threshold",
}

var exprPrograms map[ast.CompareOp]*vm.Program

func init() {
	exprPrograms = make(map[ast.CompareOp]*vm.Program, len(exprSource))
	for op, src := range exprSource {
		program, err := expr.Compile(src, expr.Env(compareEnv{}), expr.AsBool())
		if err != nil {
			panic("verdict: comparison expression " + src + " failed to compile: " + err.Error())
		}
		exprPrograms[op] = program
	}
}

// runCompare evaluates value op threshold through the compiled expr-lang
// program for op, rather than a hand-rolled switch. ok is false for an
// operator outside the six in the grammar.
func runCompare(op ast.CompareOp, value, threshold float64) (result bool, ok bool, err error) {
	program, ok := exprPrograms[op]
	if !ok {
		return false, false, nil
	}
	out, err := expr.Run(program, compareEnv{Value: value, Threshold: threshold})
	if err != nil {
		return false, true, err
	}
	return out.(bool), true, nil
}
