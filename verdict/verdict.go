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

package verdict

import (
	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/sample"
)

// Verdict is one boolean evaluation of a node, tagged with the node that
// produced it and the sample period it covers.
type Verdict struct {
	NodeName string
	Value    bool
	Period   sample.Period
}

// Aggregate is the intermediate numeric fold of one completed window,
// produced by the windower+folder before comparison against a
// threshold.
type Aggregate struct {
	NodeName string
	Kind     ast.AggKind
	Period   sample.Period
	Value    float64
}
