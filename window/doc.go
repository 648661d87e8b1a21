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

// Package window implements the event-time tumbling windower: a
// reorder buffer absorbs a bounded amount of wall-clock jitter, and
// samples are then partitioned into non-overlapping windows keyed by
// floor(event_time/duration). Only one window is ever "live" for
// writes; opening a new window immediately completes the previous one,
// trading strict event-time correctness for bounded memory. Neither
// streamsql's ticker-driven TumblingWindow nor streamz's processing-time
// window_tumbling.go key by sample event-time or implement this
// single-live-window completion rule, so the partitioning here is a
// fresh implementation grounded in their goroutine/channel-pump shape.
package window
