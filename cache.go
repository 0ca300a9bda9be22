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

// Package arcache provides a bounded, in-memory Adaptive Replacement
// Cache (ARC). ARC keeps two resident lists, one ordered by recency
// and one by frequency, plus a ghost tail of recently evicted keys
// for each, and continuously re-learns the split between the two from
// ghost hits. Compared to a plain LRU it resists scan pollution
// without the tuning knobs a 2Q or SLRU cache needs.
package arcache

import (
	"context"
	"sync"
)

// Cache is a thread-safe ARC instance holding up to a fixed number of
// entries. All entries cost 1; there is no weighting or expiration.
//
// Mutating operations (Put, Get, Update, Delete, Clear) serialize on
// a write lock. Read-only operations (Peek, Contains, Len, the debug
// dumps) share a read lock and may run concurrently with each other.
type Cache[K comparable, V any] struct {
	mu   sync.RWMutex
	core *arcCore[K, V]

	metrics *Metrics
	onEvict func(K, V)
	loader  *shardedCaller[K, V]
}

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithOnEvict registers a callback invoked whenever a resident value
// is discarded: on demotion to a ghost list and on hard eviction.
// Ghost keys aging out of B1/B2 carry no value and do not fire it.
// The callback runs while the cache lock is held, so keep it fast.
func WithOnEvict[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.onEvict = fn
	}
}

// WithMetrics directs the cache's counters at m instead of a private
// recorder, letting several caches (e.g. the shards of a Sharded)
// share one set of statistics.
func WithMetrics[K comparable, V any](m *Metrics) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.metrics = m
	}
}

// New creates a Cache bounded by capacity entries.
// Returns ErrInvalidCapacity if capacity is not positive.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	c := &Cache[K, V]{
		metrics: newMetrics(),
		loader:  newShardedCaller[K, V](),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.core = newArcCore[K, V](capacity)
	c.core.onEvict = func(k K, v V) {
		c.metrics.add(keyEvict, 1)
		if c.onEvict != nil {
			c.onEvict(k, v)
		}
	}
	return c, nil
}

// Get returns the value stored for key, promoting the entry on the
// frequency ladder: a T1 hit moves it to T2 and a T2 hit re-ranks it
// most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	v, ok := c.core.get(key, true)
	c.mu.Unlock()
	c.metrics.classify(ok)
	return v, ok
}

// Peek returns the value stored for key without touching its
// position, leaving the recency and frequency ordering intact.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.RLock()
	v, ok := c.core.get(key, false)
	c.mu.RUnlock()
	c.metrics.classify(ok)
	return v, ok
}

// Put inserts or refreshes a key-value pair, evicting per the ARC
// policy when the cache is full.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	res := c.core.put(key, value)
	c.mu.Unlock()

	switch res {
	case putHitT1, putHitT2:
		c.metrics.add(keyUpdate, 1)
	case putHitB1:
		c.metrics.add(recencyGhostHit, 1)
		c.metrics.add(keyAdd, 1)
	case putHitB2:
		c.metrics.add(frequencyGhostHit, 1)
		c.metrics.add(keyAdd, 1)
	default:
		c.metrics.add(keyAdd, 1)
	}
}

// Update overwrites the value for a resident key and reports whether
// the key was resident. With touch set the entry also moves to the
// MRU end of T2. Unlike Put, a miss changes nothing.
func (c *Cache[K, V]) Update(key K, value V, touch bool) bool {
	c.mu.Lock()
	ok := c.core.update(key, value, touch)
	c.mu.Unlock()
	if ok {
		c.metrics.add(keyUpdate, 1)
	}
	return ok
}

// Delete removes key from the cache, resident or ghost, and reports
// whether anything was removed. The adaptive target is unchanged.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.core.del(key)
}

// GetOrLoad returns the cached value for key, or runs load to compute
// it on a miss. Concurrent loads for the same key are deduplicated:
// one call runs, the rest wait and share its result. A failed load
// caches nothing and returns the error to every waiter.
//
// Keys must be of a type KeyToHash supports.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, key K, load LoadFunc[K, V]) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	keyHash, _ := KeyToHash(key)
	return c.loader.Do(ctx, key, keyHash, func(ctx context.Context, key K) (V, error) {
		// Re-check after winning the singleflight race.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load(ctx, key)
		if err != nil {
			var zero V
			return zero, err
		}
		c.Put(key, v)
		return v, nil
	})
}

// Contains reports whether key is resident, without touching it.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.core.t1.Contains(key) || c.core.t2.Contains(key)
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.core.len()
}

// Cap returns the configured capacity.
func (c *Cache[K, V]) Cap() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.core.cap
}

// Keys returns the resident keys, T1 then T2, each in LRU to MRU
// order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]K, 0, c.core.len())
	keys = append(keys, c.core.t1.Keys()...)
	keys = append(keys, c.core.t2.Keys()...)
	return keys
}

// Clear drops every resident entry and ghost and resets the adaptive
// target to zero. Metrics are kept; use Metrics().Clear() to reset
// them. Cleared values do not fire the eviction callback.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	onEvict := c.core.onEvict
	c.core = newArcCore[K, V](c.core.cap)
	c.core.onEvict = onEvict
}

// Metrics returns the cache's statistics recorder.
func (c *Cache[K, V]) Metrics() *Metrics {
	return c.metrics
}
