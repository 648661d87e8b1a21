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
	"time"

	"github.com/rulego/condstream/arith"
	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/lang"
	"github.com/rulego/condstream/logger"
	"github.com/rulego/condstream/router"
	"github.com/rulego/condstream/sample"
	"github.com/rulego/condstream/streamx"
	"github.com/rulego/condstream/window"
)

// Engine owns the single per-metric Router for a process and compiles
// rule text into running Rule pipelines that share it, so that two
// rules referencing the same metric attach to the same hot sub-stream
// (spec §4.1 and testable property 6).
type Engine struct {
	mu              sync.Mutex
	ctx             context.Context
	cancel          context.CancelFunc
	router          *router.Router
	log             logger.Logger
	resolver        arith.Resolver
	reorderInterval time.Duration
	knownMetrics     ast.Set
	knownVariables   ast.Set
	clk              window.Option[sample.Sample]
	maxReorderBuffer int
	started          bool
}

// New builds an Engine. Call Start once with the process's source
// stream before Build; Build may be called any number of times against
// the same Engine, and rules built from it share one Router instance.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:             logger.GetDefault(),
		resolver:        arith.EmptyResolver{},
		reorderInterval: window.DefaultReorderInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.router = router.New(e.log)
	return e
}

// Start begins pumping source through the Engine's Router. It must be
// called at most once per Engine; Build may be called before or after
// Start, since Router.Subscribe does not require the Router to be
// running yet.
func (e *Engine) Start(source <-chan streamx.Result[sample.Sample]) {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return
	}
	e.started = true
	e.mu.Unlock()
	go e.router.Start(e.ctx, source)
}

// Close terminates the Engine's Router and every Rule built from it.
// Individual rules may also be disposed independently with Rule.Close.
func (e *Engine) Close() {
	e.cancel()
}

// Build compiles text into a running Rule (spec §4.7):
//  1. parse text into an ast.Node (package lang, external per spec §1 but
//     satisfied in-tree by the recursive-descent front end);
//  2. validate the tree against the Engine's known-metrics/variables
//     sets, failing synchronously with InvalidExpressionError and
//     logging any warnings;
//  3. dispatch the evaluator visitor to wire router subscriptions,
//     windowers, and combinators into one verdict stream.
//
// No subscription is created, and no goroutine started, if steps 1-2
// fail. ctx is checked once, before parsing: an already-cancelled ctx
// makes Build return ctx.Err() without compiling. Parsing and
// validation themselves do not observe ctx. Once compilation succeeds,
// the running Rule's lifetime is governed by the Engine's own context
// and Rule.Close, not by ctx.
func (e *Engine) Build(ctx context.Context, text string) (*Rule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := lang.Parse(text)
	if err != nil {
		return nil, err
	}

	warnings, err := ast.Validate(root, text, e.knownMetrics, e.knownVariables)
	for _, w := range warnings {
		e.log.Warn("%v", w)
	}
	if err != nil {
		return nil, err
	}

	ruleCtx, ruleCancel := context.WithCancel(e.ctx)
	tracker := &subscriptionTracker{}

	windowOpts := []window.Option[sample.Sample]{
		window.WithReorderInterval[sample.Sample](e.reorderInterval),
		window.WithLogger[sample.Sample](e.log),
		window.WithMaxBatch[sample.Sample](e.maxReorderBuffer),
	}
	if e.clk != nil {
		windowOpts = append(windowOpts, e.clk)
	}

	v := evalVisitor{
		ctx:        ruleCtx,
		router:     e.router,
		resolver:   e.resolver,
		windowOpts: windowOpts,
		track:      tracker.track,
	}
	out := ast.Accept[vchan](root, v)

	return &Rule{
		text:      text,
		root:      root,
		ch:        out,
		cancel:    ruleCancel,
		router:    e.router,
		subs:      tracker.subs,
		metrics:   ast.CollectMetrics(root),
		variables: ast.CollectVariables(root),
	}, nil
}
