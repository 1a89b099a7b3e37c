// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Debouncer delays interactive term searches and delivers only the newest result.
//
// Every [Debouncer.Submit] restarts the quiet period. When it elapses the
// search runs with a context that is cancelled as soon as a newer term is
// submitted, and the result of a superseded run is dropped. Submitting the
// same term as the previous submission is a no-op.
//
// Terms shorter than the minimum length are not searched; they deliver the
// zero result so the caller can clear its display.
type Debouncer[T any] struct {
	delay   time.Duration
	minLen  int
	search  func(ctx context.Context, term string) (T, error)
	deliver func(term string, result T, err error)

	mu      sync.Mutex
	timer   *time.Timer
	cancel  context.CancelFunc
	seq     uint64
	last    string
	stopped bool
}

// NewDebouncer creates a debouncer. deliver is called with the debouncer's
// lock held and must not call Submit.
func NewDebouncer[T any](delay time.Duration, minLen int, search func(context.Context, string) (T, error), deliver func(string, T, error)) *Debouncer[T] {
	return &Debouncer[T]{
		delay:   delay,
		minLen:  minLen,
		search:  search,
		deliver: deliver,
		last:    "\x00",
	}
}

// Submit schedules a search for term, superseding any earlier one.
func (d *Debouncer[T]) Submit(term string) {
	term = strings.TrimSpace(term)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || term == d.last {
		return
	}

	d.supersede()
	d.last = term
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq, term) })
}

// Stop cancels any pending or running search. Nothing is delivered afterwards.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.supersede()
	d.stopped = true
}

// supersede invalidates the current generation. Callers hold mu.
func (d *Debouncer[T]) supersede() {
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Debouncer[T]) fire(seq uint64, term string) {
	d.mu.Lock()
	if seq != d.seq {
		d.mu.Unlock()
		return
	}

	if len([]rune(term)) < d.minLen {
		var zero T
		d.deliver(term, zero, nil)
		d.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	result, err := d.search(ctx, term)

	d.mu.Lock()
	defer d.mu.Unlock()
	cancel()

	if seq != d.seq {
		return
	}
	d.cancel = nil
	d.deliver(term, result, err)
}
