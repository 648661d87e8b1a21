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
	"time"

	"github.com/rulego/condstream/arith"
	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/clock"
	"github.com/rulego/condstream/logger"
	"github.com/rulego/condstream/sample"
	"github.com/rulego/condstream/window"
)

// Option modifies an Engine's default configuration.
type Option func(*Engine)

// WithLogger sets the Engine's logger, used for validation warnings and
// router/windower lifecycle diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithLogLevel is a convenience for setting the default logger's level.
func WithLogLevel(level logger.Level) Option {
	return func(e *Engine) { logger.GetDefault().SetLevel(level) }
}

// WithResolver sets the variable resolver consulted by dynamic
// arithmetic thresholds. Engines built without this option use
// arith.EmptyResolver, under which any rule with a variable threshold
// fails evaluation with UnresolvedVariableError on its first sample.
func WithResolver(r arith.Resolver) Option {
	return func(e *Engine) {
		if r != nil {
			e.resolver = r
		}
	}
}

// WithReorderInterval overrides the windower's default 1000ms wall-clock
// reorder-buffer flush interval (spec §4.2) for every rule Build
// compiles from this Engine.
func WithReorderInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.reorderInterval = d
		}
	}
}

// WithMaxReorderBuffer bounds the reorder buffer every windower this
// Engine builds uses before flushing early, regardless of the reorder
// interval's timer. A non-positive n (the default) leaves the buffer
// unbounded in size, flushing only on the timer.
func WithMaxReorderBuffer(n int) Option {
	return func(e *Engine) { e.maxReorderBuffer = n }
}

// WithClock injects a clock used by every windower this Engine builds,
// for deterministic control of the reorder-buffer timer in tests.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clk = window.WithClock[sample.Sample](c)
		}
	}
}

// WithKnownMetrics restricts Build to rules referencing only the given
// metric names; a reference to any other name fails validation with
// InvalidExpressionError. Omit this option to accept any metric name.
func WithKnownMetrics(names ...string) Option {
	return func(e *Engine) { e.knownMetrics = ast.NewStaticSet(names...) }
}

// WithKnownVariables restricts Build to rules whose dynamic thresholds
// reference only the given variable names. Omit this option to accept
// any variable name.
func WithKnownVariables(names ...string) Option {
	return func(e *Engine) { e.knownVariables = ast.NewStaticSet(names...) }
}
