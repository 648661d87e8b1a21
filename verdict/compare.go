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
	"github.com/rulego/condstream/arith"
	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/errs"
)

// compare evaluates threshold against r and applies op.
func compare(op ast.CompareOp, value float64, threshold arith.Term, r arith.Resolver, node string) (bool, error) {
	t, err := threshold.Evaluate(r)
	if err != nil {
		return false, tagNode(err, node)
	}
	result, known, err := runCompare(op, value, t)
	if err != nil {
		return false, err
	}
	if !known {
		return false, &errs.UnsupportedOperatorError{Operator: string(op), Context: "condition " + node}
	}
	return result, nil
}

// tagNode stamps the node name onto the runtime errors that don't yet
// carry one, since the arith package evaluates thresholds without
// knowledge of which leaf owns them.
func tagNode(err error, node string) error {
	switch e := err.(type) {
	case *errs.UnresolvedVariableError:
		if e.Node == "" {
			e.Node = node
		}
		return e
	case *errs.DivisionByZeroError:
		if e.Node == "" {
			e.Node = node
		}
		return e
	default:
		return err
	}
}
