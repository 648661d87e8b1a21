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

package arith

// CountOperators returns the number of binary arithmetic operators in t,
// used by the rule complexity report to weigh dynamic thresholds.
func CountOperators(t Term) int {
	b, ok := t.(Binary)
	if !ok {
		return 0
	}
	return 1 + CountOperators(b.Left) + CountOperators(b.Right)
}
