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

package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	rkerrors "github.com/tochemey/routekv/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestExecuteRunsTask(t *testing.T) {
	executor := NewSerialExecutor()
	defer executor.Stop()

	ran := false
	err := executor.Execute(context.Background(), func() { ran = true })
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestExecuteSerializesTasks(t *testing.T) {
	executor := NewSerialExecutor()
	defer executor.Stop()

	const tasks = 50
	var (
		inFlight    int
		maxInFlight int
		order       []int
		mu          sync.Mutex
	)

	wg := sync.WaitGroup{}
	for i := 0; i < tasks; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			_ = executor.Execute(context.Background(), func() {
				mu.Lock()
				inFlight++
				if inFlight > maxInFlight {
					maxInFlight = inFlight
				}
				order = append(order, i)
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inFlight--
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInFlight)
	assert.Len(t, order, tasks)
}

func TestExecuteContextCanceled(t *testing.T) {
	executor := NewSerialExecutor()
	defer executor.Stop()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = executor.Execute(context.Background(), func() {
			close(started)
			<-release
		})
	}()
	<-started

	// the worker is busy, so this submission blocks until the context expires
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := executor.Execute(ctx, func() {})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestExecuteAfterStop(t *testing.T) {
	executor := NewSerialExecutor()
	executor.Stop()

	err := executor.Execute(context.Background(), func() {})
	require.Error(t, err)
	assert.ErrorIs(t, err, rkerrors.ErrStoreClosed)
}

func TestStopIsIdempotent(t *testing.T) {
	executor := NewSerialExecutor()
	executor.Stop()
	executor.Stop()
}
