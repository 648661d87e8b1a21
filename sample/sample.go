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

// Package sample defines the clocked metric sample and the time-interval
// algebra (Period) that every verdict produced by the engine is stamped
// with.
package sample

import "time"

// Sample is one (metric-name, value, event-time) triple produced by the
// data source. Samples are immutable once constructed.
type Sample struct {
	Name  string
	Value float64
	Time  time.Time
}

// New constructs a Sample.
func New(name string, value float64, t time.Time) Sample {
	return Sample{Name: name, Value: value, Time: t}
}

// WindowID returns floor(event-time / duration), the integer key used to
// route the sample to its tumbling window.
func (s Sample) WindowID(duration time.Duration) int64 {
	return floorDiv(s.Time.UnixNano(), duration.Nanoseconds())
}

// floorDiv performs integer division truncated toward negative infinity,
// matching the window-id convention in use regardless of the sign of a.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
