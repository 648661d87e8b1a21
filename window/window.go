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

package window

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rulego/condstream/clock"
	"github.com/rulego/condstream/logger"
	"github.com/rulego/condstream/streamx"
)

// DefaultReorderInterval is the wall-clock batching interval applied
// when a Windower is built with a non-positive interval.
const DefaultReorderInterval = time.Second

// state is a window entry's lifecycle stage.
type state int

const (
	opening state = iota
	active
	completing
	closed
)

// Inner is one tumbling window's sub-stream: a multicast subject for all
// items whose event-time falls in [Start, End).
type Inner[T any] struct {
	ID    int64
	Start time.Time
	End   time.Time

	mu    sync.Mutex
	state state
	ch    chan streamx.Result[T]
}

// C returns the channel of items belonging to this window. It is closed
// when the window completes.
func (w *Inner[T]) C() <-chan streamx.Result[T] { return w.ch }

func (w *Inner[T]) push(r streamx.Result[T]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == closed || w.state == completing {
		return
	}
	w.state = active
	w.ch <- r
}

func (w *Inner[T]) complete() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == closed {
		return
	}
	w.state = closed
	close(w.ch)
}

// Windower partitions a stream<T> into a stream<stream<T>> of tumbling
// windows keyed by event-time, per the single-live-window policy: only
// one window is ever open for writes, and opening a new one immediately
// completes the previous one.
type Windower[T any] struct {
	duration        time.Duration
	reorderInterval time.Duration
	maxBatch        int
	eventTime       func(T) time.Time
	clock           clock.Clock
	log             logger.Logger
}

// Option configures a Windower.
type Option[T any] func(*Windower[T])

// WithReorderInterval overrides the default 1000ms reorder batching
// interval. It must be positive.
func WithReorderInterval[T any](d time.Duration) Option[T] {
	return func(w *Windower[T]) {
		if d > 0 {
			w.reorderInterval = d
		}
	}
}

// WithClock injects a clock, used by tests to control the reorder timer
// deterministically.
func WithClock[T any](c clock.Clock) Option[T] {
	return func(w *Windower[T]) { w.clock = c }
}

// WithMaxBatch bounds the reorder buffer's size: once a batch reaches n
// buffered items it is sorted and flushed immediately rather than
// waiting out the rest of the reorder interval. This is the "fixed-size
// reorder buffer" named in spec §3 (Windower state): it trades a little
// more re-ordering risk for a hard memory ceiling under bursty input. A
// non-positive n disables the size bound, leaving only the timed flush.
func WithMaxBatch[T any](n int) Option[T] {
	return func(w *Windower[T]) {
		if n > 0 {
			w.maxBatch = n
		}
	}
}

// WithLogger injects a logger for lifecycle diagnostics.
func WithLogger[T any](l logger.Logger) Option[T] {
	return func(w *Windower[T]) {
		if l != nil {
			w.log = l
		}
	}
}

// New builds a Windower that buckets items into windows of duration,
// using eventTime to extract each item's event-time.
func New[T any](duration time.Duration, eventTime func(T) time.Time, opts ...Option[T]) *Windower[T] {
	w := &Windower[T]{
		duration:        duration,
		reorderInterval: DefaultReorderInterval,
		eventTime:       eventTime,
		clock:           clock.Real,
		log:             logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Windower[T]) windowID(t time.Time) int64 {
	return floorDiv(t.UnixNano(), int64(w.duration))
}

func (w *Windower[T]) windowBounds(wid int64) (time.Time, time.Time) {
	start := time.Unix(0, wid*int64(w.duration)).UTC()
	return start, start.Add(w.duration)
}

// Run consumes in, re-emitting reorder-batched items into per-window
// inner streams on the returned outer channel. A terminal error on in is
// delivered to whichever window is currently open, if any, via that
// window's Inner.C(); if no window has been opened yet, it is instead
// sent on the returned error channel so the failure is never silently
// dropped. Run returns at once: a goroutine it starts consumes in until
// in is drained, carries an error, or ctx is cancelled, and then closes
// both returned channels.
func (w *Windower[T]) Run(ctx context.Context, in <-chan streamx.Result[T]) (<-chan *Inner[T], <-chan error) {
	out := make(chan *Inner[T], 1)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		var current *Inner[T]
		var batch []streamx.Result[T]
		timer := w.clock.NewTimer(w.reorderInterval)
		defer timer.Stop()

		flush := func() {
			if len(batch) == 0 {
				return
			}
			sort.SliceStable(batch, func(i, j int) bool {
				vi, erri := batch[i].Get()
				vj, errj := batch[j].Get()
				if erri != nil || errj != nil {
					return false
				}
				return w.eventTime(vi).Before(w.eventTime(vj))
			})
			for _, r := range batch {
				current = w.route(out, current, r)
			}
			batch = batch[:0]
		}

		for {
			select {
			case <-ctx.Done():
				flush()
				if current != nil {
					current.complete()
				}
				return

			case res, ok := <-in:
				if !ok {
					flush()
					if current != nil {
						current.complete()
					}
					return
				}
				if res.IsError() {
					batch = append(batch, res)
					flush()
					if current != nil {
						// the error was already routed into current's
						// channel above; completing it lets the drainer
						// observe it via Inner.C().
						current.complete()
					} else {
						errc <- res.Err()
					}
					return
				}
				batch = append(batch, res)
				if w.maxBatch > 0 && len(batch) >= w.maxBatch {
					flush()
					timer.Reset(w.reorderInterval)
				}

			case <-timer.C():
				flush()
				timer.Reset(w.reorderInterval)
			}
		}
	}()

	return out, errc
}

// route delivers r to the correct window, opening or completing windows
// per the single-live-window policy, and returns the new current window.
func (w *Windower[T]) route(out chan<- *Inner[T], current *Inner[T], r streamx.Result[T]) *Inner[T] {
	if r.IsError() {
		if current != nil {
			current.push(r)
		}
		return current
	}

	v, _ := r.Get()
	wid := w.windowID(w.eventTime(v))

	switch {
	case current == nil:
		current = w.open(out, wid)
	case wid == current.ID:
		// same window, nothing to do
	case wid > current.ID:
		current.complete()
		current = w.open(out, wid)
	default:
		w.log.Debug("window: dropping late item for closed window %d (current %d)", wid, current.ID)
		return current
	}
	current.push(r)
	return current
}

func (w *Windower[T]) open(out chan<- *Inner[T], wid int64) *Inner[T] {
	start, end := w.windowBounds(wid)
	inner := &Inner[T]{ID: wid, Start: start, End: end, state: opening, ch: make(chan streamx.Result[T], 64)}
	out <- inner
	return inner
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
