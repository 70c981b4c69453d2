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

// Package etcd is the etcd v3 implementation of backend.Client.
package etcd

import (
	"context"
	"errors"
	"fmt"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/tochemey/routekv/backend"
	rkerrors "github.com/tochemey/routekv/errors"
)

// Client is an etcd-backed backend.Client. Transactions are submitted with an
// empty compare list and success-branch ops only, so they apply
// unconditionally but still atomically.
type Client struct {
	config     *Config
	client     *clientv3.Client
	kv         clientv3.KV
	clientFunc func(clientv3.Config) (*clientv3.Client, error)
	closeFunc  func(*clientv3.Client) error
}

var _ backend.Client = (*Client)(nil)

// NewClient connects to the etcd cluster described by config and probes the
// first endpoint before returning. Connectivity and authentication failures
// are reported as rkerrors.ErrBackendUnavailable.
func NewClient(config *Config) (*Client, error) {
	return newClient(config, clientv3.New, func(client *clientv3.Client) error { return client.Close() })
}

func newClient(config *Config, clientFunc func(clientv3.Config) (*clientv3.Client, error), closeFunc func(*clientv3.Client) error) (*Client, error) {
	if config == nil {
		return nil, errors.New("backend/etcd: config is nil")
	}

	config.Sanitize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if clientFunc == nil {
		clientFunc = clientv3.New
	}

	if closeFunc == nil {
		closeFunc = func(client *clientv3.Client) error { return client.Close() }
	}

	client, err := clientFunc(clientv3.Config{
		Endpoints:   config.Endpoints,
		DialTimeout: config.DialTimeout,
		TLS:         config.TLS,
		Username:    config.Username,
		Password:    config.Password,
		Context:     config.Context,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rkerrors.ErrBackendUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(config.Context, config.DialTimeout)
	defer cancel()

	if _, err = client.Status(ctx, config.Endpoints[0]); err != nil {
		if cerr := closeFunc(client); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close etcd client: %w", cerr))
		}
		return nil, fmt.Errorf("%w: failed to connect to etcd: %w", rkerrors.ErrBackendUnavailable, err)
	}

	config.Logger.Infof("connected to etcd cluster %v", config.Endpoints)
	return &Client{
		config:     config,
		client:     client,
		kv:         client.KV,
		clientFunc: clientFunc,
		closeFunc:  closeFunc,
	}, nil
}

// Get implements backend.Client.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	opCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.kv.Get(opCtx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get key %q: %w", rkerrors.ErrBackendUnavailable, key, err)
	}

	if len(resp.Kvs) == 0 {
		return nil, nil
	}

	return resp.Kvs[0].Value, nil
}

// GetPrefix implements backend.Client.
func (c *Client) GetPrefix(ctx context.Context, prefix string) ([]backend.KVPair, error) {
	opCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.kv.Get(opCtx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get prefix %q: %w", rkerrors.ErrBackendUnavailable, prefix, err)
	}

	pairs := make([]backend.KVPair, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		pairs = append(pairs, backend.KVPair{Key: string(kv.Key), Value: kv.Value})
	}

	return pairs, nil
}

// Txn implements backend.Client.
func (c *Client) Txn(ctx context.Context, ops []backend.Op) (*backend.TxnResult, error) {
	opCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	etcdOps := make([]clientv3.Op, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case backend.OpPut:
			etcdOps = append(etcdOps, clientv3.OpPut(op.Key, string(op.Value)))
		case backend.OpDelete:
			etcdOps = append(etcdOps, clientv3.OpDelete(op.Key))
		default:
			return nil, fmt.Errorf("backend/etcd: unknown op kind %d for key %q", op.Kind, op.Key)
		}
	}

	resp, err := c.kv.Txn(opCtx).Then(etcdOps...).Commit()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to commit transaction: %w", rkerrors.ErrBackendUnavailable, err)
	}

	return &backend.TxnResult{
		Succeeded: resp.Succeeded,
		Revision:  resp.Header.Revision,
	}, nil
}

// Close releases the underlying etcd client. Close is idempotent.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	client := c.client
	c.client = nil
	if c.closeFunc != nil {
		return c.closeFunc(client)
	}

	return client.Close()
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = c.config.Context
	}
	return context.WithTimeout(ctx, c.config.Timeout)
}
