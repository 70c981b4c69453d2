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

package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tochemey/routekv/backend"
)

// memoryClient is an in-memory backend.Client used to exercise the store
// without a live etcd cluster. Transactions apply under one lock, so they
// are atomic with respect to concurrent readers like the real backend.
type memoryClient struct {
	mu       sync.RWMutex
	data     map[string][]byte
	revision int64

	txnErr     error
	getErr     error
	failTxn    bool
	closeCalls int
}

var _ backend.Client = (*memoryClient)(nil)

func newMemoryClient() *memoryClient {
	return &memoryClient{data: make(map[string][]byte)}
}

func (m *memoryClient) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getErr != nil {
		return nil, m.getErr
	}

	value, ok := m.data[key]
	if !ok {
		return nil, nil
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *memoryClient) GetPrefix(_ context.Context, prefix string) ([]backend.KVPair, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getErr != nil {
		return nil, m.getErr
	}

	pairs := make([]backend.KVPair, 0)
	for key, value := range m.data {
		if strings.HasPrefix(key, prefix) {
			out := make([]byte, len(value))
			copy(out, value)
			pairs = append(pairs, backend.KVPair{Key: key, Value: out})
		}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return pairs, nil
}

func (m *memoryClient) Txn(_ context.Context, ops []backend.Op) (*backend.TxnResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.txnErr != nil {
		return nil, m.txnErr
	}

	m.revision++
	if m.failTxn {
		return &backend.TxnResult{Succeeded: false, Revision: m.revision}, nil
	}

	for _, op := range ops {
		switch op.Kind {
		case backend.OpPut:
			value := make([]byte, len(op.Value))
			copy(value, op.Value)
			m.data[op.Key] = value
		case backend.OpDelete:
			delete(m.data, op.Key)
		}
	}

	return &backend.TxnResult{Succeeded: true, Revision: m.revision}, nil
}

func (m *memoryClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalls++
	return nil
}

func (m *memoryClient) snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.data))
	for key, value := range m.data {
		out[key] = string(value)
	}
	return out
}
