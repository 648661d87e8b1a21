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
	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/lang"
)

// ExtractMetrics parses text and returns the set of metric names its
// condition leaves reference, without building a running pipeline. It
// is the package-level counterpart of the spec §6 extract_metrics(text)
// surface and does not require an Engine.
func ExtractMetrics(text string) (map[string]struct{}, error) {
	root, err := lang.Parse(text)
	if err != nil {
		return nil, err
	}
	return ast.CollectMetrics(root), nil
}

// ExtractVariables parses text and returns the set of resolver variable
// names referenced by any threshold arithmetic tree in it.
func ExtractVariables(text string) (map[string]struct{}, error) {
	root, err := lang.Parse(text)
	if err != nil {
		return nil, err
	}
	return ast.CollectVariables(root), nil
}

// AnalyzeComplexity parses text and summarizes the shape of its
// expression tree (spec §4.6, visitor 4 / §6 analyze_complexity).
func AnalyzeComplexity(text string) (ast.ComplexityReport, error) {
	root, err := lang.Parse(text)
	if err != nil {
		return ast.ComplexityReport{}, err
	}
	return ast.AnalyzeComplexity(root), nil
}
