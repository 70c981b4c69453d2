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

// Package store maintains a dynamic routing table in a shared transactional
// KV store, so that multiple proxy-control processes can read and mutate
// routes consistently without a central in-memory registry.
//
// Every mutation is a single atomic backend transaction. The store applies
// no compare guards: concurrent writers race last-writer-wins at the storage
// layer, and callers needing exactly-once semantics across processes must
// lock at a higher level.
package store

import (
	"context"
	"fmt"
	"sort"

	goset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"

	"github.com/tochemey/routekv/backend"
	rkerrors "github.com/tochemey/routekv/errors"
	"github.com/tochemey/routekv/internal/codec"
	"github.com/tochemey/routekv/internal/dispatch"
	"github.com/tochemey/routekv/internal/validation"
	"github.com/tochemey/routekv/log"
)

// Store implements the atomic route transaction protocol. All backend calls
// issued by one Store are serialized through a single worker, so at most one
// operation from this process is in flight at any time.
type Store struct {
	config   *Config
	client   backend.Client
	executor *dispatch.SerialExecutor
	logger   log.Logger
	closed   *atomic.Bool
}

// New creates a Store over the given backend client.
func New(config *Config) (*Store, error) {
	if config == nil {
		return nil, fmt.Errorf("store: config is nil")
	}

	config.Sanitize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Store{
		config:   config,
		client:   config.Client,
		executor: dispatch.NewSerialExecutor(),
		logger:   config.Logger,
		closed:   atomic.NewBool(false),
	}, nil
}

// AddRoute stores the route and its descriptors in one transaction: the
// routespec key holding the target, the target key holding the data blob,
// and the three caller-supplied proxy descriptor keys. Adding an existing
// routespec overwrites it.
func (s *Store) AddRoute(ctx context.Context, routespec, target string, data []byte, keys *RouteKeys, rule string) (*backend.TxnResult, error) {
	if err := s.validateRoute(target, keys); err != nil {
		return nil, err
	}

	routespec = NormalizeRoutespec(routespec)
	ops := []backend.Op{
		backend.Put(codec.RouteKey(s.config.JupyterHubPrefix, routespec), []byte(target)),
		backend.Put(codec.TargetKey(s.config.JupyterHubPrefix, target), data),
		backend.Put(keys.ServiceURLPath, []byte(target)),
		backend.Put(keys.RouterServicePath, []byte(keys.ServiceAlias)),
		backend.Put(keys.RouterRulePath, []byte(rule)),
	}

	s.logger.Debugf("adding route %s -> %s", routespec, target)
	return s.transaction(ctx, ops)
}

// DeleteRoute removes the route and its descriptors in one transaction
// mirroring the puts of AddRoute. Deleting a routespec that does not exist
// is a no-op success: a warning is logged and a nil result returned.
//
// The target data key is removed unconditionally: when several routespecs
// share a target, deleting any one of them also deletes the shared data
// blob. Every writer of the same store exhibits this behavior.
func (s *Store) DeleteRoute(ctx context.Context, routespec string, keys *RouteKeys) (*backend.TxnResult, error) {
	if err := validateKeys(keys); err != nil {
		return nil, err
	}

	routespec = NormalizeRoutespec(routespec)
	routeKey := codec.RouteKey(s.config.JupyterHubPrefix, routespec)
	value, err := s.get(ctx, routeKey)
	if err != nil {
		return nil, err
	}

	if value == nil {
		s.logger.Warnf("route %s doesn't exist. Nothing to delete", routespec)
		return nil, nil
	}

	target := string(value)
	ops := []backend.Op{
		backend.Delete(routeKey),
		backend.Delete(codec.TargetKey(s.config.JupyterHubPrefix, target)),
		backend.Delete(keys.ServiceURLPath),
		backend.Delete(keys.RouterServicePath),
		backend.Delete(keys.RouterRulePath),
	}

	s.logger.Debugf("deleting route %s -> %s", routespec, target)
	return s.transaction(ctx, ops)
}

// GetTarget returns the target the given routespec forwards to, or the
// empty string when the route does not exist.
func (s *Store) GetTarget(ctx context.Context, routespec string) (string, error) {
	routespec = NormalizeRoutespec(routespec)
	value, err := s.get(ctx, codec.RouteKey(s.config.JupyterHubPrefix, routespec))
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// GetData returns the opaque data blob of the given target, or nil when no
// such target is stored.
func (s *Store) GetData(ctx context.Context, target string) ([]byte, error) {
	return s.get(ctx, codec.TargetKey(s.config.JupyterHubPrefix, target))
}

// ListRoutes returns the raw key/value pairs of every stored route, a
// point-in-time snapshot of the routes prefix. Each entry can be
// materialized with DecodeRouteEntry.
func (s *Store) ListRoutes(ctx context.Context) ([]backend.KVPair, error) {
	var (
		pairs   []backend.KVPair
		readErr error
	)

	prefix := codec.RoutesPrefix(s.config.JupyterHubPrefix)
	if err := s.executor.Execute(ctx, func() {
		pairs, readErr = s.client.GetPrefix(ctx, prefix)
	}); err != nil {
		return nil, err
	}

	return pairs, readErr
}

// DecodeRouteEntry materializes one entry of a ListRoutes snapshot:
// it recovers the routespec from the raw key, reads the target from the raw
// value and fetches the target's data blob.
func (s *Store) DecodeRouteEntry(ctx context.Context, pair backend.KVPair) (*RouteEntry, error) {
	routespec, err := codec.DecodeRouteKey(s.config.JupyterHubPrefix, pair.Key)
	if err != nil {
		return nil, err
	}

	target := string(pair.Value)
	data, err := s.GetData(ctx, target)
	if err != nil {
		return nil, err
	}

	return &RouteEntry{
		Routespec: routespec,
		Target:    target,
		Data:      data,
	}, nil
}

// Routes returns every stored route materialized and indexed by routespec.
func (s *Store) Routes(ctx context.Context) (map[string]*RouteEntry, error) {
	pairs, err := s.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}

	routes := make(map[string]*RouteEntry, len(pairs))
	for _, pair := range pairs {
		entry, err := s.DecodeRouteEntry(ctx, pair)
		if err != nil {
			return nil, err
		}
		routes[entry.Routespec] = entry
	}

	return routes, nil
}

// Targets returns the distinct targets currently routed to.
func (s *Store) Targets(ctx context.Context) ([]string, error) {
	pairs, err := s.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}

	targets := goset.NewSet[string]()
	for _, pair := range pairs {
		targets.Add(string(pair.Value))
	}

	return targets.ToSlice(), nil
}

// PersistDynamicConfig flattens the given nested configuration under the
// traefik prefix and writes every resulting pair in one transaction. Keys
// from a previous configuration that are absent from dynamicConfig are left
// behind; cleaning them up is the caller's responsibility.
func (s *Store) PersistDynamicConfig(ctx context.Context, dynamicConfig map[string]any) (*backend.TxnResult, error) {
	flat := codec.Flatten(s.config.TraefikPrefix, dynamicConfig)

	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ops := make([]backend.Op, 0, len(keys))
	for _, key := range keys {
		ops = append(ops, backend.Put(key, []byte(flat[key])))
	}

	s.logger.Debugf("persisting %d dynamic config keys under %s", len(ops), s.config.TraefikPrefix)
	return s.transaction(ctx, ops)
}

// Close stops the store's worker and closes the backend client. Close is
// idempotent; operations after Close fail with ErrStoreClosed.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.executor.Stop()
	return s.client.Close()
}

// transaction submits ops as one atomic transaction through the serial
// executor. A backend-reported failure surfaces as ErrTransactionFailed
// together with the raw result for diagnostics.
func (s *Store) transaction(ctx context.Context, ops []backend.Op) (*backend.TxnResult, error) {
	var (
		result *backend.TxnResult
		txnErr error
	)

	if err := s.executor.Execute(ctx, func() {
		result, txnErr = s.client.Txn(ctx, ops)
	}); err != nil {
		return nil, err
	}

	if txnErr != nil {
		return nil, txnErr
	}

	if !result.Succeeded {
		return result, fmt.Errorf("%w: revision %d", rkerrors.ErrTransactionFailed, result.Revision)
	}

	return result, nil
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	var (
		value   []byte
		readErr error
	)

	if err := s.executor.Execute(ctx, func() {
		value, readErr = s.client.Get(ctx, key)
	}); err != nil {
		return nil, err
	}

	return value, readErr
}

func (s *Store) validateRoute(target string, keys *RouteKeys) error {
	if err := validateKeys(keys); err != nil {
		return err
	}
	return validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("target", target)).
		Validate()
}

func validateKeys(keys *RouteKeys) error {
	if keys == nil {
		return fmt.Errorf("store: route keys are required")
	}
	return keys.Validate()
}
