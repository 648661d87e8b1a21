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

// Package verdict evaluates a compiled ast.Node against a per-metric
// sample stream, producing a stream of Verdict values: aggregation
// leaves fold each tumbling window into an Aggregate before comparing,
// simple leaves compare every sample, and AND/OR combinators merge two
// child verdict streams under combine-latest semantics.
package verdict
