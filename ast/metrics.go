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

package ast

// metricCollector walks the tree gathering the distinct metric names
// referenced by its condition leaves.
type metricCollector struct {
	seen map[string]struct{}
}

func (c *metricCollector) VisitCondition(n *ConditionNode) map[string]struct{} {
	c.seen[n.Cond.Metric] = struct{}{}
	return c.seen
}

func (c *metricCollector) VisitBinary(n *BinaryNode) map[string]struct{} {
	Accept[map[string]struct{}](n.Left, c)
	Accept[map[string]struct{}](n.Right, c)
	return c.seen
}

// CollectMetrics returns the set of metric names referenced anywhere in
// the tree rooted at n.
func CollectMetrics(n Node) map[string]struct{} {
	c := &metricCollector{seen: map[string]struct{}{}}
	Accept[map[string]struct{}](n, c)
	return c.seen
}
