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

// Entry is a key-value pair as returned by the debug dumps.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// EntriesT1 returns the recency list in LRU to MRU order.
//
// The dump accessors exist for diagnostics and tests; they copy the
// list under the read lock and are not meant for hot paths.
func (c *Cache[K, V]) EntriesT1() []Entry[K, V] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return dumpEntries(c.core.t1)
}

// EntriesT2 returns the frequency list in LRU to MRU order.
func (c *Cache[K, V]) EntriesT2() []Entry[K, V] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return dumpEntries(c.core.t2)
}

// GhostsB1 returns the keys recently evicted from T1, ordered oldest
// demotion first.
func (c *Cache[K, V]) GhostsB1() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.core.b1.Keys()
}

// GhostsB2 returns the keys recently evicted from T2, ordered oldest
// demotion first.
func (c *Cache[K, V]) GhostsB2() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.core.b2.Keys()
}

// Target returns the current adaptive target size of T1, in
// [0, Cap()].
func (c *Cache[K, V]) Target() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.core.target
}

func dumpEntries[K comparable, V any](l *orderedList[K, V]) []Entry[K, V] {
	entries := make([]Entry[K, V], 0, l.Len())
	l.AscendLRU(func(k K, v V) bool {
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
		return true
	})
	return entries
}
