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
	"context"
	"sync"
)

// Registry is a concurrent map from rule name to its compiled *Rule,
// letting a host process manage many rules sharing one Engine's Router
// (the natural multi-rule extension of the single-process, in-memory
// engine named in spec §1). Registry does not replace Engine.Build;
// it just tracks the result under a name so a host can look a rule up
// and dispose it later without holding onto the *Rule itself.
type Registry struct {
	engine *Engine

	mu    sync.RWMutex
	rules map[string]*Rule
}

// NewRegistry builds a Registry whose rules all Build against engine.
func NewRegistry(engine *Engine) *Registry {
	return &Registry{engine: engine, rules: make(map[string]*Rule)}
}

// Put compiles text and registers the resulting Rule under name,
// replacing and closing any rule already registered under that name.
// It fails without touching the registry if text does not compile.
func (r *Registry) Put(ctx context.Context, name, text string) (*Rule, error) {
	rule, err := r.engine.Build(ctx, text)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	old := r.rules[name]
	r.rules[name] = rule
	r.mu.Unlock()

	if old != nil {
		old.Close()
	}
	return rule, nil
}

// Get returns the rule registered under name, if any.
func (r *Registry) Get(name string) (*Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[name]
	return rule, ok
}

// Remove closes and unregisters the rule under name. It is a no-op if
// no rule is registered under that name.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	rule, ok := r.rules[name]
	delete(r.rules, name)
	r.mu.Unlock()
	if ok {
		rule.Close()
	}
}

// Names returns the currently registered rule names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.rules))
	for name := range r.rules {
		out = append(out, name)
	}
	return out
}

// Close closes and unregisters every rule in the registry.
func (r *Registry) Close() {
	r.mu.Lock()
	rules := r.rules
	r.rules = make(map[string]*Rule)
	r.mu.Unlock()
	for _, rule := range rules {
		rule.Close()
	}
}
