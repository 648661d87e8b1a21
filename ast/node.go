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

	"github.com/google/uuid"

	"github.com/rulego/condstream/arith"
)

// CompareOp is a comparison operator.
type CompareOp string

const (
	GT CompareOp = ">"
	GE CompareOp = ">="
	LT CompareOp = "<"
	LE CompareOp = "<="
	EQ CompareOp = "=="
	NE CompareOp = "!="
)

// AggKind is a window aggregation function.
type AggKind string

const (
	Avg AggKind = "avg"
	Sum AggKind = "sum"
	Max AggKind = "max"
	Min AggKind = "min"
)

// LogicalOp combines two child verdicts.
type LogicalOp int

const (
	AND LogicalOp = iota
	OR
)

func (o LogicalOp) String() string {
	if o == OR {
		return "||"
	}
	return "&&"
}

// Condition is the leaf payload: what metric, which comparison, against
// what threshold, optionally folded over a tumbling window first.
type Condition struct {
	Metric        string
	Op            CompareOp
	Threshold     arith.Term
	IsAggregation bool
	AggKind       AggKind
	Window        time.Duration
}

// Node is either a ConditionNode or a BinaryNode. Use Accept to dispatch
// on its concrete type.
type Node interface {
	// Name is a stable identifier for tracing/dedup: a freshly-minted
	// unique string for leaves, and a deterministic composition of the
	// operator and child names for binary nodes (spec §4.5).
	Name() string
	isNode()
}

// ConditionNode is a leaf of the expression tree.
type ConditionNode struct {
	NodeName string
	Cond     Condition
}

// NewConditionNode mints a fresh, globally unique leaf node.
func NewConditionNode(cond Condition) *ConditionNode {
	return &ConditionNode{NodeName: "cond-" + uuid.NewString(), Cond: cond}
}

func (n *ConditionNode) Name() string { return n.NodeName }
func (n *ConditionNode) isNode()      {}

// BinaryNode combines two children under AND or OR.
type BinaryNode struct {
	NodeName string
	Op       LogicalOp
	Left     Node
	Right    Node
}

// NewBinaryNode builds a combinator node. Its name is derived
// deterministically from the operator and the children's names so that
// repeated compilations of the same rule text produce the same
// combinator identifiers even though leaf names are randomly minted.
func NewBinaryNode(op LogicalOp, left, right Node) *BinaryNode {
	return &BinaryNode{
		NodeName: fmt.Sprintf("%s(%s,%s)", op, left.Name(), right.Name()),
		Op:       op,
		Left:     left,
		Right:    right,
	}
}

func (n *BinaryNode) Name() string { return n.NodeName }
func (n *BinaryNode) isNode()      {}

// Visitor dispatches over the two node shapes, producing a value of type
// T for each.
type Visitor[T any] interface {
	VisitCondition(n *ConditionNode) T
	VisitBinary(n *BinaryNode) T
}

// Accept dispatches n to the matching method of v.
func Accept[T any](n Node, v Visitor[T]) T {
	switch x := n.(type) {
	case *ConditionNode:
		return v.VisitCondition(x)
	case *BinaryNode:
		return v.VisitBinary(x)
	default:
		panic(fmt.Sprintf("ast: unknown node type %T", n))
	}
}
