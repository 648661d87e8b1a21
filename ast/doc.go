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

// Package ast holds the boolean-rule expression tree: condition leaves
// and AND/OR binary nodes, dispatched through a generic visitor Accept
// function rather than one accept method per concrete type, since Go
// cannot express a polymorphic method returning a caller-chosen type
// parameter T. Five analyses are built on top of this dispatch:
// evaluation (the root condstream package, built from package verdict's
// leaves and combinator), metric collection, variable collection,
// complexity analysis, and validation.
package ast
