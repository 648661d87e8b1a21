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
	"math"
	"time"

	"github.com/rulego/condstream/arith"
	"github.com/rulego/condstream/errs"
)

// Set reports membership of a known name. KnownMetrics and
// KnownVariables providers implement this so the engine can validate a
// rule against whatever inventory the caller maintains (a static list,
// a live registry, a service discovery client, and so on).
type Set interface {
	Contains(name string) bool
}

// StaticSet is a Set backed by a fixed collection, the common case for
// tests and for callers that know their metric/variable universe ahead
// of time.
type StaticSet map[string]struct{}

// NewStaticSet builds a StaticSet from the given names.
func NewStaticSet(names ...string) StaticSet {
	s := make(StaticSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s StaticSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

const maxSensibleWindow = 24 * time.Hour

// Validate checks n against the known metric and variable universes and
// the structural rules in the grammar's semantics: a non-empty metric
// name, a supported comparison operator, a non-NaN/non-infinite constant
// threshold, and, for aggregation leaves, a supported aggregation kind
// and a positive window. It returns the first InvalidExpressionError it
// encounters, or nil plus any non-fatal ValidationWarnings.
func Validate(n Node, ruleName string, knownMetrics, knownVariables Set) ([]*errs.ValidationWarning, error) {
	v := &validator{ruleName: ruleName, knownMetrics: knownMetrics, knownVariables: knownVariables}
	Accept[struct{}](n, v)
	if v.err != nil {
		return v.warnings, v.err
	}
	return v.warnings, nil
}

type validator struct {
	ruleName       string
	knownMetrics   Set
	knownVariables Set
	warnings       []*errs.ValidationWarning
	err            error
}

func (v *validator) fail(node, message string) {
	if v.err == nil {
		v.err = &errs.InvalidExpressionError{Rule: v.ruleName, Node: node, Message: message}
	}
}

func (v *validator) warn(node, message string) {
	v.warnings = append(v.warnings, &errs.ValidationWarning{Node: node, Message: message})
}

func (v *validator) VisitCondition(n *ConditionNode) struct{} {
	if v.err != nil {
		return struct{}{}
	}
	c := n.Cond

	if c.Metric == "" {
		v.fail(n.Name(), "metric name must not be empty")
		return struct{}{}
	}
	if v.knownMetrics != nil && !v.knownMetrics.Contains(c.Metric) {
		v.fail(n.Name(), "unknown metric "+c.Metric)
		return struct{}{}
	}

	switch c.Op {
	case GT, GE, LT, LE, EQ, NE:
	default:
		v.fail(n.Name(), "unsupported comparison operator "+string(c.Op))
		return struct{}{}
	}

	if c.Threshold != nil && v.knownVariables != nil {
		for name := range c.Threshold.Variables() {
			if !v.knownVariables.Contains(name) {
				v.fail(n.Name(), "unknown variable "+name)
				return struct{}{}
			}
		}
	}

	if isLiteralConstant(c) {
		val := literalValue(c)
		if math.IsNaN(val) || math.IsInf(val, 0) {
			v.fail(n.Name(), "threshold must be a finite number")
			return struct{}{}
		}
	}

	if c.IsAggregation {
		switch c.AggKind {
		case Avg, Sum, Max, Min:
		default:
			v.fail(n.Name(), "unsupported aggregation kind "+string(c.AggKind))
			return struct{}{}
		}
		if c.Window <= 0 {
			v.fail(n.Name(), "aggregation window must be positive")
			return struct{}{}
		}
		if c.Window > maxSensibleWindow {
			v.warn(n.Name(), "aggregation window exceeds 24h, results may be slow to emit")
		}
	} else {
		if c.AggKind != "" {
			v.warn(n.Name(), "aggregation kind set on a non-aggregation condition, ignored")
		}
		if c.Window != 0 {
			v.warn(n.Name(), "window set on a non-aggregation condition, ignored")
		}
	}
	return struct{}{}
}

func (v *validator) VisitBinary(n *BinaryNode) struct{} {
	Accept[struct{}](n.Left, v)
	Accept[struct{}](n.Right, v)
	return struct{}{}
}

func isLiteralConstant(c Condition) bool {
	_, ok := c.Threshold.(interface{ Variables() map[string]struct{} })
	if !ok {
		return false
	}
	return len(c.Threshold.Variables()) == 0
}

func literalValue(c Condition) float64 {
	val, _ := c.Threshold.Evaluate(arith.EmptyResolver{})
	return val
}
