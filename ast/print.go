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

package ast

import (
	"fmt"
	"time"
)

// Print renders n back to rule text accepted by the grammar, so that
// Print(Parse(text)) reproduces an equivalent rule. Node names (which
// carry no surface syntax) are not reproduced.
func Print(n Node) string {
	return Accept[string](n, printer{})
}

type printer struct{}

func (printer) VisitCondition(n *ConditionNode) string {
	c := n.Cond
	if !c.IsAggregation {
		return fmt.Sprintf("%s %s %s", c.Metric, c.Op, c.Threshold.String())
	}
	return fmt.Sprintf("%s(%s, %s) %s %s", c.AggKind, c.Metric, formatWindow(c.Window), c.Op, c.Threshold.String())
}

func (p printer) VisitBinary(n *BinaryNode) string {
	left := Accept[string](n.Left, p)
	right := Accept[string](n.Right, p)
	return fmt.Sprintf("(%s %s %s)", left, n.Op, right)
}

// formatWindow renders a duration in the largest whole unit (h, m, s)
// that divides it evenly, falling back to Go's default duration string.
func formatWindow(d time.Duration) string {
	switch {
	case d > 0 && d%time.Hour == 0:
		return fmt.Sprintf("%dh", int64(d/time.Hour))
	case d > 0 && d%time.Minute == 0:
		return fmt.Sprintf("%dm", int64(d/time.Minute))
	case d > 0 && d%time.Second == 0:
		return fmt.Sprintf("%ds", int64(d/time.Second))
	default:
		return d.String()
	}
}
