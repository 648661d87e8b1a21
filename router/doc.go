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

// Package router demultiplexes a single source stream of samples into
// one hot sub-stream per metric name. Any number of condition leaves can
// Subscribe to the same metric; the first caller creates the sub-stream,
// every later caller shares it. Neither streamsql's fixed-predicate
// Router nor streamz's fixed-count FanOut support that late, dynamic,
// get-or-insert subscription shape, so this is a small in-tree
// broadcaster built for it.
package router
