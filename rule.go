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

	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/router"
)

// Rule is one compiled expression's running pipeline: a root verdict
// stream plus the resources (per-rule context, router subscriptions)
// that Close releases.
type Rule struct {
	text      string
	root      ast.Node
	ch        vchan
	cancel    context.CancelFunc
	router    *router.Router
	subs      []subscription
	metrics   map[string]struct{}
	variables map[string]struct{}
	once      sync.Once
}

// C returns the root verdict stream. It is closed once the rule
// terminates, either because an upstream error propagated to the root
// (spec §7 propagation policy) or because Close was called.
func (r *Rule) C() vchan { return r.ch }

// Text returns the rule text Build compiled.
func (r *Rule) Text() string { return r.text }

// Root exposes the compiled expression tree, e.g. for Print or a second
// AnalyzeComplexity pass without re-parsing.
func (r *Rule) Root() ast.Node { return r.root }

// Metrics returns the set of metric names this rule subscribed to,
// equal to ExtractMetrics(r.Text()) (testable property 5).
func (r *Rule) Metrics() map[string]struct{} {
	out := make(map[string]struct{}, len(r.metrics))
	for k := range r.metrics {
		out[k] = struct{}{}
	}
	return out
}

// Variables returns the set of resolver variable names this rule's
// thresholds reference.
func (r *Rule) Variables() map[string]struct{} {
	out := make(map[string]struct{}, len(r.variables))
	for k := range r.variables {
		out[k] = struct{}{}
	}
	return out
}

// Close disposes the rule: it cancels every leaf and combinator
// goroutine in the tree and releases the Router subscriptions this rule
// held exclusively (spec §5 Cancellation). It is safe to call more than
// once and from any goroutine. Close does not stop the Engine's Router
// itself, which may still serve other rules.
func (r *Rule) Close() {
	r.once.Do(func() {
		r.cancel()
		for _, s := range r.subs {
			r.router.Unsubscribe(s.metric, s.ch)
		}
	})
}
