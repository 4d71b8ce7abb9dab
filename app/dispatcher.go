// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"context"
	"sync"
)

// Dispatcher queues functions from any goroutine to run on the render
// goroutine, which processes the queue once per frame. Scene changes
// made from other goroutines must go through it.
type Dispatcher struct {
	mu    sync.Mutex
	queue []func()
}

// Post queues fn to run on the next frame.
func (dp *Dispatcher) Post(fn func()) {
	dp.mu.Lock()
	dp.queue = append(dp.queue, fn)
	dp.mu.Unlock()
}

// Do queues fn and waits until it has run or ctx is done.
func (dp *Dispatcher) Do(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	dp.Post(func() { done <- fn() })
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len returns the number of queued functions.
func (dp *Dispatcher) Len() int {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	return len(dp.queue)
}

// ProcessQueue runs the queued functions in order. Functions queued
// while it runs wait for the next call.
func (dp *Dispatcher) ProcessQueue() int {
	dp.mu.Lock()
	q := dp.queue
	dp.queue = nil
	dp.mu.Unlock()
	for _, fn := range q {
		fn()
	}
	return len(q)
}
