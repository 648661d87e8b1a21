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

// Package clock re-exports github.com/zoobzio/clockz so the rest of the
// engine depends on one narrow name instead of the vendor path directly.
// The windower's reorder-buffer flush (spec §4.2) is the only wall-clock
// suspension point in the engine, and tests drive it with clockz's fake
// clock instead of real sleeps.
package clock

import (
	"time"

	"github.com/zoobzio/clockz"
)

// Clock abstracts wall-clock time operations.
type Clock = clockz.Clock

// Timer represents a single pending timer event.
type Timer = clockz.Timer

// Ticker delivers ticks at a fixed interval.
type Ticker = clockz.Ticker

// FakeClock is a Clock whose time only advances when told to.
type FakeClock = clockz.FakeClock

// Real is the default Clock backed by the standard library.
var Real Clock = clockz.RealClock

// NewFake returns a FakeClock seeded at t, for deterministic tests of the
// reorder buffer and window lifecycle.
func NewFake(t time.Time) *FakeClock {
	return clockz.NewFakeClockAt(t)
}
