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

	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/sample"
	"github.com/rulego/condstream/streamx"
)

// Combine merges two child verdict streams under combine-latest
// semantics (spec §4.5): nothing is emitted until both sides have
// produced at least one verdict, and thereafter every verdict from
// either side produces one combined verdict pairing the new value with
// the latest value seen from the other side. The combined period is the
// join of the two latest input periods, and the combined node name is
// node.Name(), the deterministic identifier minted by
// ast.NewBinaryNode from the operator and the children's names.
//
// A terminal error on either side is forwarded once and terminates the
// combined stream; terminal completion of an input is not itself
// forwarded as an error, it simply stops further combined emissions
// from that side. Each later verdict from the side still open produces
// one combined verdict paired with the completed side's last value; the
// combined stream closes once both inputs have closed (inner terminal
// signals are not propagated outward through combinators as terminal
// signals, per the cancellation note in spec §5).
func Combine(ctx context.Context, node *ast.BinaryNode, left, right <-chan streamx.Result[Verdict]) <-chan streamx.Result[Verdict] {
	out := make(chan streamx.Result[Verdict])

	go func() {
		defer close(out)

		var (
			haveLeft, haveRight bool
			lastLeft, lastRight Verdict
			leftDone, rightDone bool
		)

		emit := func() bool {
			if !haveLeft || !haveRight {
				return true
			}
			value := apply(node.Op, lastLeft.Value, lastRight.Value)
			period := sample.Join(lastLeft.Period, lastRight.Period)
			return send(ctx, out, streamx.Value(Verdict{NodeName: node.Name(), Value: value, Period: period}))
		}

		l, r := left, right
		for l != nil || r != nil {
			select {
			case <-ctx.Done():
				return

			case res, ok := <-l:
				if !ok {
					l = nil
					leftDone = true
					if leftDone && rightDone {
						return
					}
					continue
				}
				if res.IsError() {
					send(ctx, out, streamx.Error[Verdict](res.Err()))
					return
				}
				v, _ := res.Get()
				lastLeft, haveLeft = v, true
				if !emit() {
					return
				}

			case res, ok := <-r:
				if !ok {
					r = nil
					rightDone = true
					if leftDone && rightDone {
						return
					}
					continue
				}
				if res.IsError() {
					send(ctx, out, streamx.Error[Verdict](res.Err()))
					return
				}
				v, _ := res.Get()
				lastRight, haveRight = v, true
				if !emit() {
					return
				}
			}
		}
	}()

	return out
}

// apply evaluates the logical operator over two child verdict values.
func apply(op ast.LogicalOp, l, r bool) bool {
	if op == ast.OR {
		return l || r
	}
	return l && r
}
