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
	"context"
	"sync"
)

// LoadFunc computes the value for a key on a cache miss.
type LoadFunc[K any, V any] func(ctx context.Context, key K) (V, error)

// numCallerShards stripes the in-flight call table so unrelated loads
// don't contend on one mutex.
const numCallerShards uint64 = 256

// shardedCaller runs load functions with singleflight semantics: only
// one execution per key hash is in flight at a time, and duplicate
// callers wait for the original and receive the same results.
type shardedCaller[K any, V any] struct {
	shards []*lockedCaller[K, V]
}

func newShardedCaller[K any, V any]() *shardedCaller[K, V] {
	sc := &shardedCaller[K, V]{
		shards: make([]*lockedCaller[K, V], int(numCallerShards)),
	}
	for i := range sc.shards {
		sc.shards[i] = &lockedCaller[K, V]{
			m: make(map[uint64]*call[V]),
		}
	}
	return sc
}

func (sc *shardedCaller[K, V]) Do(ctx context.Context, key K, keyHash uint64, fn LoadFunc[K, V]) (V, error) {
	return sc.shards[keyHash%numCallerShards].do(ctx, key, keyHash, fn)
}

// lockedCaller tracks the in-flight call per key hash within one
// stripe.
type lockedCaller[K any, V any] struct {
	mu sync.Mutex
	m  map[uint64]*call[V]
}

func (lc *lockedCaller[K, V]) do(ctx context.Context, key K, keyHash uint64, fn LoadFunc[K, V]) (V, error) {
	lc.mu.Lock()
	if c, ok := lc.m[keyHash]; ok {
		lc.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err
	}

	c := &call[V]{}
	c.wg.Add(1)
	lc.m[keyHash] = c
	lc.mu.Unlock()

	c.val, c.err = fn(ctx, key)
	c.wg.Done()

	lc.mu.Lock()
	delete(lc.m, keyHash)
	lc.mu.Unlock()

	return c.val, c.err
}

// call is a running or completed do call.
type call[V any] struct {
	wg  sync.WaitGroup
	val V
	err error
}
