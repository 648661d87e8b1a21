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

	"github.com/rulego/condstream/arith"
)

// ComplexityReport summarizes the shape of a compiled rule: how many
// nodes it has, how deeply nested it is, and how much arithmetic its
// thresholds carry. DistinctMetrics and DistinctVariables supplement the
// base report with the rule's external surface area.
type ComplexityReport struct {
	NodeCount         int
	ConditionCount    int
	AggregationCount  int
	MaxDepth          int
	OperatorCount     int
	DistinctMetrics   int
	DistinctVariables int
}

// IsHighComplexity reports whether the rule is expensive enough to flag
// to an operator: more than 20 nodes, nesting deeper than 10, or more
// than 5 aggregation leaves.
func (r ComplexityReport) IsHighComplexity() bool {
	return r.NodeCount > 20 || r.MaxDepth > 10 || r.AggregationCount > 5
}

func (r ComplexityReport) String() string {
	return fmt.Sprintf(
		"nodes=%d conditions=%d aggregations=%d depth=%d operators=%d metrics=%d variables=%d high_complexity=%t",
		r.NodeCount, r.ConditionCount, r.AggregationCount, r.MaxDepth,
		r.OperatorCount, r.DistinctMetrics, r.DistinctVariables, r.IsHighComplexity(),
	)
}

type complexityVisitor struct{}

type complexityAccum struct {
	nodes        int
	conditions   int
	aggregations int
	operators    int
	depth        int
}

func (complexityVisitor) VisitCondition(n *ConditionNode) complexityAccum {
	// An aggregation leaf nests a window over its comparison (spec
	// §4.3's avg/sum/max/min over a tumbling window sit above the
	// threshold compare), so it counts as two levels of depth where a
	// simple leaf counts as one.
	depth := 1
	if n.Cond.IsAggregation {
		depth = 2
	}
	acc := complexityAccum{nodes: 1, conditions: 1, depth: depth}
	if n.Cond.IsAggregation {
		acc.aggregations = 1
	}
	if n.Cond.Threshold != nil {
		acc.operators = arith.CountOperators(n.Cond.Threshold)
	}
	return acc
}

func (v complexityVisitor) VisitBinary(n *BinaryNode) complexityAccum {
	left := Accept[complexityAccum](n.Left, v)
	right := Accept[complexityAccum](n.Right, v)
	depth := left.depth
	if right.depth > depth {
		depth = right.depth
	}
	return complexityAccum{
		nodes:        left.nodes + right.nodes + 1,
		conditions:   left.conditions + right.conditions,
		aggregations: left.aggregations + right.aggregations,
		operators:    left.operators + right.operators + 1, // the combinator itself counts as an operator
		depth:        depth + 1,
	}
}

// AnalyzeComplexity walks the tree rooted at n and summarizes its shape.
func AnalyzeComplexity(n Node) ComplexityReport {
	acc := Accept[complexityAccum](n, complexityVisitor{})
	return ComplexityReport{
		NodeCount:         acc.nodes,
		ConditionCount:    acc.conditions,
		AggregationCount:  acc.aggregations,
		MaxDepth:          acc.depth,
		OperatorCount:     acc.operators,
		DistinctMetrics:   len(CollectMetrics(n)),
		DistinctVariables: len(CollectVariables(n)),
	}
}
