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
	"context"
	"math"
	"time"

	"github.com/rulego/condstream/arith"
	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/clock"
	"github.com/rulego/condstream/sample"
	"github.com/rulego/condstream/streamx"
	"github.com/rulego/condstream/window"
)

// AggregationLeaf consumes a per-metric sample stream, partitions it
// into tumbling windows sized to the condition's window duration, folds
// each completed window into an Aggregate with the condition's
// aggregation kind, and emits one Verdict per non-empty window.
func AggregationLeaf(
	ctx context.Context,
	node *ast.ConditionNode,
	in <-chan streamx.Result[sample.Sample],
	resolver arith.Resolver,
	opts ...window.Option[sample.Sample],
) <-chan streamx.Result[Verdict] {
	out := make(chan streamx.Result[Verdict])

	opts = append([]window.Option[sample.Sample]{window.WithClock[sample.Sample](clock.Real)}, opts...)
	w := window.New(node.Cond.Window, func(s sample.Sample) time.Time { return s.Time }, opts...)
	outer, errc := w.Run(ctx, in)

	go func() {
		defer close(out)
		for {
			inner, ok := <-outer
			if !ok {
				break
			}
			if !foldAndEmit(ctx, node, inner, resolver, out) {
				return
			}
		}
		// outer is closed only after errc has already received any
		// pending terminal error (or been closed with none), so this
		// read never blocks.
		if err, ok := <-errc; ok {
			send(ctx, out, streamx.Error[Verdict](err))
		}
	}()

	return out
}

// foldAndEmit drains a single window's samples, comparing the fold
// result against the condition's threshold. It returns false if the
// caller should stop (terminal error or context cancellation).
func foldAndEmit(ctx context.Context, node *ast.ConditionNode, inner *window.Inner[sample.Sample], resolver arith.Resolver, out chan<- streamx.Result[Verdict]) bool {
	var (
		count int
		sum   float64
		max   = math.Inf(-1)
		min   = math.Inf(1)
	)

	for res := range inner.C() {
		if res.IsError() {
			send(ctx, out, streamx.Error[Verdict](res.Err()))
			return false
		}
		s, _ := res.Get()
		count++
		sum += s.Value
		if s.Value > max {
			max = s.Value
		}
		if s.Value < min {
			min = s.Value
		}
	}

	if count == 0 {
		return true // empty windows emit no verdict
	}

	var value float64
	switch node.Cond.AggKind {
	case ast.Avg:
		value = sum / float64(count)
	case ast.Sum:
		value = sum
	case ast.Max:
		value = max
	case ast.Min:
		value = min
	}

	period, err := sample.NewPeriod(inner.Start, inner.End)
	if err != nil {
		send(ctx, out, streamx.Error[Verdict](err))
		return false
	}

	result, err := compare(node.Cond.Op, value, node.Cond.Threshold, resolver, node.Name())
	if err != nil {
		send(ctx, out, streamx.Error[Verdict](err))
		return false
	}

	return send(ctx, out, streamx.Value(Verdict{NodeName: node.Name(), Value: result, Period: period}))
}
