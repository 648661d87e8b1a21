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

import (
	"sync"

	"github.com/spf13/cast"
)

// Resolver is a read-only, concurrency-safe name-to-number mapping
// consulted while evaluating a threshold's arithmetic tree.
type Resolver interface {
	Resolve(name string) (float64, bool)
}

// StaticResolver is a Resolver backed by a fixed map, safe for
// concurrent reads from multiple evaluating leaves.
type StaticResolver struct {
	mu     sync.RWMutex
	values map[string]float64
}

// NewStaticResolver builds a StaticResolver from values of any numeric
// or numeric-string type, coercing each with spf13/cast so callers can
// hand in JSON-decoded or externally-sourced variable maps unchanged.
func NewStaticResolver(values map[string]interface{}) (*StaticResolver, error) {
	resolved := make(map[string]float64, len(values))
	for name, raw := range values {
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, err
		}
		resolved[name] = v
	}
	return &StaticResolver{values: resolved}, nil
}

// Resolve implements Resolver.
func (s *StaticResolver) Resolve(name string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// Set updates a single variable, safe for concurrent use with Resolve.
func (s *StaticResolver) Set(name string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]float64)
	}
	s.values[name] = value
}

// EmptyResolver resolves nothing; used when a rule has no variable
// thresholds so no resolver was supplied.
type EmptyResolver struct{}

func (EmptyResolver) Resolve(string) (float64, bool) { return 0, false }
