// MIT License
//
// Copyright (c) 2022-2026 Arsene Tochemey Gandote
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package dispatch provides a serial executor that funnels every backend
// call of a process through one dedicated worker goroutine, so transactions
// issued by this process never execute concurrently with each other.
package dispatch

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	rkerrors "github.com/tochemey/routekv/errors"
)

type task struct {
	run  func()
	done chan struct{}
}

// SerialExecutor runs submitted tasks one at a time in submission order on a
// single worker goroutine. Callers block until their task completes or their
// context is done.
type SerialExecutor struct {
	tasks    chan *task
	stop     chan struct{}
	stopped  *atomic.Bool
	stopOnce *sync.Once
}

// NewSerialExecutor creates a SerialExecutor and starts its worker.
func NewSerialExecutor() *SerialExecutor {
	executor := &SerialExecutor{
		tasks:    make(chan *task),
		stop:     make(chan struct{}),
		stopped:  atomic.NewBool(false),
		stopOnce: &sync.Once{},
	}

	go executor.serve()
	return executor
}

// Execute runs fn on the worker goroutine and blocks until fn returns or ctx
// is done. When ctx expires after the task has been dispatched, the task
// still runs to completion on the worker; only the wait is abandoned.
func (e *SerialExecutor) Execute(ctx context.Context, fn func()) error {
	if e.stopped.Load() {
		return rkerrors.ErrStoreClosed
	}

	submitted := &task{run: fn, done: make(chan struct{})}
	select {
	case e.tasks <- submitted:
	case <-e.stop:
		return rkerrors.ErrStoreClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-submitted.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop shuts the executor down. In-flight tasks run to completion; tasks
// submitted afterwards are rejected with ErrStoreClosed. Stop is idempotent.
func (e *SerialExecutor) Stop() {
	e.stopOnce.Do(func() {
		e.stopped.Store(true)
		close(e.stop)
	})
}

func (e *SerialExecutor) serve() {
	for {
		select {
		case submitted := <-e.tasks:
			submitted.run()
			close(submitted.done)
		case <-e.stop:
			return
		}
	}
}
