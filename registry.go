/*
 * Copyright 2025 Stackmesh, Inc. and Contributors
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

package arcache

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Registry holds named cache instances so a host process can create
// them once and look them up by name elsewhere. All caches in one
// registry share key and value types; hosts with heterogeneous caches
// run one registry per shape.
type Registry[K comparable, V any] struct {
	mu     sync.RWMutex
	caches map[string]*Cache[K, V]
	logger *zap.Logger
}

// RegistryOption configures a Registry.
type RegistryOption[K comparable, V any] func(*Registry[K, V])

// WithLogger sets the logger for registry lifecycle events. The
// default discards them.
func WithLogger[K comparable, V any](logger *zap.Logger) RegistryOption[K, V] {
	return func(r *Registry[K, V]) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry.
func NewRegistry[K comparable, V any](opts ...RegistryOption[K, V]) *Registry[K, V] {
	r := &Registry[K, V]{
		caches: make(map[string]*Cache[K, V]),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register creates a cache under name and returns it.
// Returns ErrDuplicateName if the name is taken and ErrInvalidCapacity
// if capacity is not positive.
func (r *Registry[K, V]) Register(name string, capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	cache, err := New[K, V](capacity, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "register %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.caches[name]; ok {
		return nil, errors.Wrapf(ErrDuplicateName, "register %q", name)
	}
	r.caches[name] = cache
	r.logger.Debug("registered cache",
		zap.String("name", name),
		zap.Int("capacity", capacity))
	return cache, nil
}

// Lookup returns the cache registered under name.
// Returns ErrNotFound for unknown names.
func (r *Registry[K, V]) Lookup(name string) (*Cache[K, V], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cache, ok := r.caches[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "lookup %q", name)
	}
	return cache, nil
}

// Close removes the cache registered under name and clears it.
// Returns ErrNotFound for unknown names. Handles obtained earlier
// keep working but can no longer be looked up.
func (r *Registry[K, V]) Close(name string) error {
	r.mu.Lock()
	cache, ok := r.caches[name]
	if ok {
		delete(r.caches, name)
	}
	r.mu.Unlock()

	if !ok {
		return errors.Wrapf(ErrNotFound, "close %q", name)
	}
	cache.Clear()
	r.logger.Debug("closed cache", zap.String("name", name))
	return nil
}

// Names returns the registered names in sorted order.
func (r *Registry[K, V]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.caches))
	for name := range r.caches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
