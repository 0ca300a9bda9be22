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

import "github.com/google/btree"

// rankDegree is the branching factor of the by-rank B-tree. Ranks
// arrive in increasing order, so inserts always land on the rightmost
// leaf and a moderate degree keeps the tree shallow.
const rankDegree = 16

// node is a single orderedList entry. rank is assigned once at
// insertion and never changes for the life of the node.
type node[K comparable, V any] struct {
	key   K
	rank  uint64
	value V
}

// orderedList is a recency-ordered container with two coordinated
// indices: a hash map keyed by entry key and a B-tree keyed by
// insertion rank. Ranks increase strictly with every insertion, so
// the tree minimum is the LRU end and the maximum the MRU end.
//
// Ghost lists are orderedList[K, struct{}], which stores no values.
// An orderedList is not safe for concurrent use.
type orderedList[K comparable, V any] struct {
	byKey    map[K]*node[K, V]
	byRank   *btree.BTreeG[*node[K, V]]
	nextRank uint64
}

func newOrderedList[K comparable, V any]() *orderedList[K, V] {
	return &orderedList[K, V]{
		byKey: make(map[K]*node[K, V]),
		byRank: btree.NewG[*node[K, V]](rankDegree, func(a, b *node[K, V]) bool {
			return a.rank < b.rank
		}),
	}
}

func (l *orderedList[K, V]) Len() int {
	return len(l.byKey)
}

func (l *orderedList[K, V]) Contains(key K) bool {
	_, ok := l.byKey[key]
	return ok
}

// Get returns the value stored for key. The entry's rank is unchanged.
func (l *orderedList[K, V]) Get(key K) (V, bool) {
	if n, ok := l.byKey[key]; ok {
		return n.value, true
	}
	var zero V
	return zero, false
}

// PushMRU inserts key at the MRU end under a fresh rank. An existing
// entry for key is removed first, so re-pushing an entry bumps it to
// the MRU end.
func (l *orderedList[K, V]) PushMRU(key K, value V) {
	l.Delete(key)
	l.nextRank++
	n := &node[K, V]{key: key, rank: l.nextRank, value: value}
	l.byKey[key] = n
	l.byRank.ReplaceOrInsert(n)
}

// Update replaces the value for key in place, preserving its rank.
// It reports whether the key was present.
func (l *orderedList[K, V]) Update(key K, value V) bool {
	n, ok := l.byKey[key]
	if !ok {
		return false
	}
	n.value = value
	return true
}

func (l *orderedList[K, V]) Delete(key K) bool {
	n, ok := l.byKey[key]
	if !ok {
		return false
	}
	delete(l.byKey, key)
	l.byRank.Delete(n)
	return true
}

// PopLRU removes and returns the entry with the smallest rank.
func (l *orderedList[K, V]) PopLRU() (K, V, bool) {
	n, ok := l.byRank.Min()
	if !ok {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	l.byRank.Delete(n)
	delete(l.byKey, n.key)
	return n.key, n.value, true
}

// AscendLRU visits entries from LRU to MRU until fn returns false.
func (l *orderedList[K, V]) AscendLRU(fn func(key K, value V) bool) {
	l.byRank.Ascend(func(n *node[K, V]) bool {
		return fn(n.key, n.value)
	})
}

// Keys returns the keys in LRU to MRU order.
func (l *orderedList[K, V]) Keys() []K {
	keys := make([]K, 0, len(l.byKey))
	l.AscendLRU(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}
