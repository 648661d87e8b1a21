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

// Package streamx carries the Result[T] convenience type used on every
// channel in the engine so that a single terminal error can flow
// alongside values without a second dedicated error channel.
package streamx

// Result is either a value or a terminal error. Every stream in the
// engine is a channel of Result[T]; a Result carrying an error is always
// the last item sent before the channel is closed.
type Result[T any] struct {
	value T
	err   error
}

// Value wraps v in a successful Result.
func Value[T any](v T) Result[T] { return Result[T]{value: v} }

// Error wraps err in a failed, terminal Result.
func Error[T any](err error) Result[T] { return Result[T]{err: err} }

// IsError reports whether r carries a terminal error.
func (r Result[T]) IsError() bool { return r.err != nil }

// Get returns the value and any error. Callers should check the error
// before using the value.
func (r Result[T]) Get() (T, error) { return r.value, r.err }

// Must returns the value, panicking if r carries an error. Intended for
// callers that have already checked IsError.
func (r Result[T]) Must() T {
	if r.err != nil {
		panic(r.err)
	}
	return r.value
}

// Err returns the error, or nil for a successful Result.
func (r Result[T]) Err() error { return r.err }
