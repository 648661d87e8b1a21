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

package router

import (
	"context"
	"sync"

	"github.com/rulego/condstream/logger"
	"github.com/rulego/condstream/sample"
	"github.com/rulego/condstream/streamx"
)

const subscriberBuffer = 16

// subject is the hot sub-stream for one metric name: a set of
// subscriber channels that every matching sample (or terminal error) is
// broadcast to.
type subject struct {
	mu          sync.Mutex
	subscribers []chan streamx.Result[sample.Sample]
	closed      bool
}

func newSubject() *subject {
	return &subject{}
}

func (s *subject) subscribe() <-chan streamx.Result[sample.Sample] {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan streamx.Result[sample.Sample], subscriberBuffer)
	if s.closed {
		close(ch)
		return ch
	}
	s.subscribers = append(s.subscribers, ch)
	return ch
}

func (s *subject) broadcast(r streamx.Result[sample.Sample]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, ch := range s.subscribers {
		ch <- r
	}
}

func (s *subject) unsubscribe(ch <-chan streamx.Result[sample.Sample]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.subscribers {
		if c == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(c)
			return
		}
	}
}

func (s *subject) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil
}

// Router demultiplexes a single source stream of samples into one
// subject per metric name. Subscribe is idempotent and safe for
// concurrent use: the first caller for a metric creates its subject, any
// later caller for the same metric shares it.
type Router struct {
	mu       sync.Mutex
	subjects map[string]*subject
	closed   bool
	log      logger.Logger
}

// New builds a Router. Call Start once to begin pumping source into the
// per-metric subjects; Subscribe may be called before or after Start.
func New(log logger.Logger) *Router {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Router{subjects: make(map[string]*subject), log: log}
}

func (r *Router) subjectFor(metric string) *subject {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subjects[metric]
	if !ok {
		s = newSubject()
		// a subject created after the source terminated starts closed
		s.closed = r.closed
		r.subjects[metric] = s
	}
	return s
}

// Subscribe returns the sub-stream of samples named metric. Every call
// for the same metric name returns channels fed by the same underlying
// subject.
func (r *Router) Subscribe(metric string) <-chan streamx.Result[sample.Sample] {
	return r.subjectFor(metric).subscribe()
}

// Unsubscribe detaches ch from metric's subject and closes it. Used by a
// rule's disposal path (spec §5 Cancellation) to release the
// per-metric subscriptions it held exclusively; it is a no-op if ch has
// already been detached or the metric has no subject.
func (r *Router) Unsubscribe(metric string, ch <-chan streamx.Result[sample.Sample]) {
	r.mu.Lock()
	s, ok := r.subjects[metric]
	r.mu.Unlock()
	if !ok {
		return
	}
	s.unsubscribe(ch)
}

// Start consumes src until it closes, dispatching each sample to its
// metric's subject. A terminal error on src is fanned out to every
// subject's subscribers exactly once before all subjects are closed.
// Start blocks until src is drained or ctx is cancelled; run it in its
// own goroutine.
func (r *Router) Start(ctx context.Context, src <-chan streamx.Result[sample.Sample]) {
	defer r.closeAllSubjects()

	for {
		select {
		case <-ctx.Done():
			return
		case res, ok := <-src:
			if !ok {
				return
			}
			if res.IsError() {
				r.log.Error("router: upstream error, terminating all subjects: %v", res.Err())
				r.broadcastAll(res)
				return
			}
			s, err := res.Get()
			if err != nil {
				continue
			}
			r.subjectFor(s.Name).broadcast(res)
		}
	}
}

func (r *Router) broadcastAll(res streamx.Result[sample.Sample]) {
	r.mu.Lock()
	subjects := make([]*subject, 0, len(r.subjects))
	for _, s := range r.subjects {
		subjects = append(subjects, s)
	}
	r.mu.Unlock()
	for _, s := range subjects {
		s.broadcast(res)
	}
}

func (r *Router) closeAllSubjects() {
	r.mu.Lock()
	r.closed = true
	subjects := make([]*subject, 0, len(r.subjects))
	for _, s := range r.subjects {
		subjects = append(subjects, s)
	}
	r.mu.Unlock()
	for _, s := range subjects {
		s.closeAll()
	}
}
