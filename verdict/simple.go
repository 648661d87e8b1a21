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

	"github.com/rulego/condstream/arith"
	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/sample"
	"github.com/rulego/condstream/streamx"
)

// SimpleLeaf emits one Verdict per upstream sample, comparing the
// sample's value against the condition's threshold. The verdict's
// period is the single instant of the sample.
func SimpleLeaf(ctx context.Context, node *ast.ConditionNode, in <-chan streamx.Result[sample.Sample], resolver arith.Resolver) <-chan streamx.Result[Verdict] {
	out := make(chan streamx.Result[Verdict])

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case res, ok := <-in:
				if !ok {
					return
				}
				if res.IsError() {
					send(ctx, out, streamx.Error[Verdict](res.Err()))
					return
				}
				s, _ := res.Get()
				value, err := compare(node.Cond.Op, s.Value, node.Cond.Threshold, resolver, node.Name())
				if err != nil {
					send(ctx, out, streamx.Error[Verdict](err))
					return
				}
				v := Verdict{NodeName: node.Name(), Value: value, Period: sample.Instant(s.Time)}
				if !send(ctx, out, streamx.Value(v)) {
					return
				}
			}
		}
	}()

	return out
}

func send[T any](ctx context.Context, out chan<- streamx.Result[T], r streamx.Result[T]) bool {
	select {
	case out <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
