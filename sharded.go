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

// Sharded spreads keys across independent Cache shards by routing
// hash, trading a little hit-ratio fidelity (each shard adapts its
// own target) for much less write-lock contention. Keys must be of a
// type KeyToHash supports.
type Sharded[K comparable, V any] struct {
	shards  []*Cache[K, V]
	mask    uint64
	metrics *Metrics
}

// NewSharded creates a sharded cache with the given total capacity.
// shardCount is rounded up to a power of two; capacity is split
// evenly across shards with a floor of one entry each. All shards
// report into one shared Metrics.
func NewSharded[K comparable, V any](capacity, shardCount int, opts ...Option[K, V]) (*Sharded[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	n := 1
	for n < shardCount {
		n <<= 1
	}
	perShard := (capacity + n - 1) / n
	if perShard < 1 {
		perShard = 1
	}

	s := &Sharded[K, V]{
		shards:  make([]*Cache[K, V], n),
		mask:    uint64(n - 1),
		metrics: newMetrics(),
	}
	for i := range s.shards {
		shardOpts := append([]Option[K, V]{WithMetrics[K, V](s.metrics)}, opts...)
		cache, err := New[K, V](perShard, shardOpts...)
		if err != nil {
			return nil, err
		}
		s.shards[i] = cache
	}
	return s, nil
}

func (s *Sharded[K, V]) shard(key K) *Cache[K, V] {
	h, _ := KeyToHash(key)
	return s.shards[h&s.mask]
}

// Get returns the value for key from its shard, with promotion.
func (s *Sharded[K, V]) Get(key K) (V, bool) {
	return s.shard(key).Get(key)
}

// Peek returns the value for key without touching its position.
func (s *Sharded[K, V]) Peek(key K) (V, bool) {
	return s.shard(key).Peek(key)
}

// Put inserts or refreshes a key-value pair in its shard.
func (s *Sharded[K, V]) Put(key K, value V) {
	s.shard(key).Put(key, value)
}

// Update overwrites a resident key's value in its shard.
func (s *Sharded[K, V]) Update(key K, value V, touch bool) bool {
	return s.shard(key).Update(key, value, touch)
}

// Delete removes key from its shard.
func (s *Sharded[K, V]) Delete(key K) bool {
	return s.shard(key).Delete(key)
}

// Contains reports whether key is resident in its shard.
func (s *Sharded[K, V]) Contains(key K) bool {
	return s.shard(key).Contains(key)
}

// Len returns the number of resident entries across all shards.
func (s *Sharded[K, V]) Len() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Len()
	}
	return total
}

// Cap returns the summed capacity of all shards. Rounding the
// per-shard capacity up means this can slightly exceed the capacity
// passed to NewSharded.
func (s *Sharded[K, V]) Cap() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Cap()
	}
	return total
}

// Clear drops every entry in every shard.
func (s *Sharded[K, V]) Clear() {
	for _, shard := range s.shards {
		shard.Clear()
	}
}

// Metrics returns the recorder shared by all shards.
func (s *Sharded[K, V]) Metrics() *Metrics {
	return s.metrics
}
