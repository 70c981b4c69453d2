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

// Package errors defines the sentinel errors surfaced by routekv.
//
// Callers are expected to test them with errors.Is since the packages of this
// module wrap them with operation-specific context.
package errors

import "errors"

var (
	// ErrBackendUnavailable is returned when the KV backend cannot be
	// reached or refuses authentication. routekv never retries; the caller
	// decides whether and when to try again.
	ErrBackendUnavailable = errors.New("kv backend is unavailable")

	// ErrTransactionFailed is returned when the backend reports an
	// unsuccessful transaction. The routing table is unchanged when this
	// error is returned.
	ErrTransactionFailed = errors.New("kv transaction failed")

	// ErrDecode is returned when a stored key or value does not match the
	// expected escaping or prefix scheme. It indicates data corruption or a
	// writer/reader schema mismatch and is never silently skipped.
	ErrDecode = errors.New("malformed route entry")

	// ErrStoreClosed is returned when an operation is attempted after the
	// route store has been closed.
	ErrStoreClosed = errors.New("route store is closed")
)
