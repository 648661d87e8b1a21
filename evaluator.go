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

package condstream

import (
	"context"
	"sync"

	"github.com/rulego/condstream/arith"
	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/router"
	"github.com/rulego/condstream/sample"
	"github.com/rulego/condstream/streamx"
	"github.com/rulego/condstream/verdict"
	"github.com/rulego/condstream/window"
)

// vchan is the verdict stream type every evalVisitor case produces;
// ast.Accept is parameterized on it so the evaluator is just another
// ast.Visitor implementation (spec §4.6, visitor 1).
type vchan = <-chan streamx.Result[verdict.Verdict]

// evalVisitor is the "Evaluator" visitor of spec §4.6: it dispatches a
// condition leaf to a Router subscription plus an aggregation or simple
// leaf, and a binary node to a Combine over its two children's streams.
type evalVisitor struct {
	ctx        context.Context
	router     *router.Router
	resolver   arith.Resolver
	windowOpts []window.Option[sample.Sample]
	track      func(metric string, ch <-chan streamx.Result[sample.Sample])
}

func (v evalVisitor) VisitCondition(n *ast.ConditionNode) vchan {
	sub := v.router.Subscribe(n.Cond.Metric)
	v.track(n.Cond.Metric, sub)
	if n.Cond.IsAggregation {
		return verdict.AggregationLeaf(v.ctx, n, sub, v.resolver, v.windowOpts...)
	}
	return verdict.SimpleLeaf(v.ctx, n, sub, v.resolver)
}

func (v evalVisitor) VisitBinary(n *ast.BinaryNode) vchan {
	left := ast.Accept[vchan](n.Left, v)
	right := ast.Accept[vchan](n.Right, v)
	return verdict.Combine(v.ctx, n, left, right)
}

// subscriptionTracker records every Router subscription an evalVisitor
// opens while compiling one rule, so Rule.Close can release exactly
// those the rule holds exclusively, per the cancellation contract of
// spec §5.
type subscriptionTracker struct {
	mu   sync.Mutex
	subs []subscription
}

type subscription struct {
	metric string
	ch     <-chan streamx.Result[sample.Sample]
}

func (t *subscriptionTracker) track(metric string, ch <-chan streamx.Result[sample.Sample]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subs = append(t.subs, subscription{metric: metric, ch: ch})
}
