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
	"github.com/rulego/condstream/errs"
	"github.com/rulego/condstream/lang"
)

// ValidationResult is the observable shape of the spec §6
// validate(text, known_metrics?, known_variables?) surface.
type ValidationResult struct {
	IsValid  bool
	Errors   []error
	Warnings []*errs.ValidationWarning
}

// Validate parses and validates text against the optional known-metric
// and known-variable universes (pass nil for either to skip that
// check), never returning an error itself: both syntax failures and
// validation failures surface as entries in Errors, matching the
// round-trip law validate(valid_text).is_valid == true &&
// len(errors) == 0.
func Validate(text string, knownMetrics, knownVariables ast.Set) ValidationResult {
	root, err := lang.Parse(text)
	if err != nil {
		return ValidationResult{IsValid: false, Errors: []error{err}}
	}

	warnings, err := ast.Validate(root, text, knownMetrics, knownVariables)
	if err != nil {
		return ValidationResult{IsValid: false, Errors: []error{err}, Warnings: warnings}
	}
	return ValidationResult{IsValid: true, Warnings: warnings}
}
