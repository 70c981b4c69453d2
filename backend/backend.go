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

// Package backend defines the transactional KV contract the route store
// depends on. Concrete adapters live in subpackages.
package backend

import "context"

// OpKind discriminates the actions a transaction can carry.
type OpKind int

const (
	// OpPut writes a key/value pair.
	OpPut OpKind = iota
	// OpDelete removes a key.
	OpDelete
)

// Op is one put or delete action inside a transaction.
type Op struct {
	// Kind tells whether the op is a put or a delete.
	Kind OpKind
	// Key is the full key path the op applies to.
	Key string
	// Value is the payload of a put. It is nil for deletes.
	Value []byte
}

// Put creates a put op.
func Put(key string, value []byte) Op {
	return Op{Kind: OpPut, Key: key, Value: value}
}

// Delete creates a delete op.
func Delete(key string) Op {
	return Op{Kind: OpDelete, Key: key}
}

// KVPair is one key/value entry returned by a prefix range read.
type KVPair struct {
	Key   string
	Value []byte
}

// TxnResult reports the outcome of a submitted transaction.
type TxnResult struct {
	// Succeeded is the backend's success flag. The transaction applied
	// either all of its ops or none of them.
	Succeeded bool
	// Revision is the backend revision of the write when available.
	Revision int64
}

// Client is a transactional KV store. Implementations must apply Txn ops as
// a single all-or-nothing unit with no partial state visible to concurrent
// readers.
type Client interface {
	// Get returns the value stored at key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// GetPrefix returns a snapshot of every key/value pair stored under the
	// given key prefix.
	GetPrefix(ctx context.Context, prefix string) ([]KVPair, error)
	// Txn applies the given ops as one atomic transaction.
	Txn(ctx context.Context, ops []Op) (*TxnResult, error)
	// Close releases the backend connection. Further calls on the client
	// are invalid after Close returns.
	Close() error
}
