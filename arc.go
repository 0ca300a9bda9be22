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

// arcCore is the Adaptive Replacement Cache state machine. It holds
// the four lists described by Megiddo & Modha (2003):
//
//	T1: resident entries seen exactly once recently (recency)
//	T2: resident entries seen at least twice (frequency)
//	B1: ghost keys recently evicted from T1
//	B2: ghost keys recently evicted from T2
//
// target is the adaptive split between the resident portions of the
// two ladders: hits in B1 grow it (the workload rewards recency),
// hits in B2 shrink it. The following hold after every operation:
//
//	|T1| + |T2| <= cap
//	|T1| + |B1| <= cap
//	|T2| + |B2| <= 2*cap
//	0 <= target <= cap
//
// and the four lists are pairwise disjoint on keys. arcCore is not
// safe for concurrent use; Cache serializes access to it.
type arcCore[K comparable, V any] struct {
	cap    int
	target int

	t1 *orderedList[K, V]
	t2 *orderedList[K, V]
	b1 *orderedList[K, struct{}]
	b2 *orderedList[K, struct{}]

	// onEvict is invoked whenever a resident value is discarded,
	// either by demotion to a ghost list or by a hard eviction.
	onEvict func(K, V)
}

// putResult classifies where a put found its key, which determines
// how the facade accounts for it.
type putResult int

const (
	putMiss putResult = iota
	putHitT1
	putHitT2
	putHitB1
	putHitB2
)

func newArcCore[K comparable, V any](capacity int) *arcCore[K, V] {
	return &arcCore[K, V]{
		cap: capacity,
		t1:  newOrderedList[K, V](),
		t2:  newOrderedList[K, V](),
		b1:  newOrderedList[K, struct{}](),
		b2:  newOrderedList[K, struct{}](),
	}
}

// get returns the value for key if it is resident. With touch set, a
// T1 hit promotes the entry to the MRU end of T2 and a T2 hit re-ranks
// it at the MRU end. Ghost membership is not a hit.
func (c *arcCore[K, V]) get(key K, touch bool) (V, bool) {
	if v, ok := c.t1.Get(key); ok {
		if touch {
			c.t1.Delete(key)
			c.t2.PushMRU(key, v)
		}
		return v, true
	}
	if v, ok := c.t2.Get(key); ok {
		if touch {
			c.t2.PushMRU(key, v)
		}
		return v, true
	}
	var zero V
	return zero, false
}

// put inserts or refreshes key, dispatching on which of the four
// lists currently knows it.
func (c *arcCore[K, V]) put(key K, value V) putResult {
	// Resident in T1: second access, promote to the frequency ladder.
	if c.t1.Contains(key) {
		c.t1.Delete(key)
		c.t2.PushMRU(key, value)
		return putHitT1
	}

	// Resident in T2: overwrite and re-rank at the MRU end.
	if c.t2.Contains(key) {
		c.t2.PushMRU(key, value)
		return putHitT2
	}

	// Ghost in B1: the recency ladder was evicted too eagerly.
	if c.b1.Contains(key) {
		c.target = min(c.cap, c.target+adaptStep(c.b2.Len(), c.b1.Len()))
		c.replace(false)
		c.b1.Delete(key)
		c.t2.PushMRU(key, value)
		return putHitB1
	}

	// Ghost in B2: the frequency ladder was evicted too eagerly.
	if c.b2.Contains(key) {
		c.target = max(0, c.target-adaptStep(c.b1.Len(), c.b2.Len()))
		c.replace(true)
		c.b2.Delete(key)
		c.t2.PushMRU(key, value)
		return putHitB2
	}

	// Pure miss: make room, then admit into the recency ladder.
	c.adjust()
	c.t1.PushMRU(key, value)
	return putMiss
}

// update overwrites the value for a resident key. With touch set the
// entry additionally moves to the MRU end of T2. Non-resident keys
// (including ghosts) are left untouched.
func (c *arcCore[K, V]) update(key K, value V, touch bool) bool {
	if c.t1.Contains(key) {
		if touch {
			c.t1.Delete(key)
			c.t2.PushMRU(key, value)
		} else {
			c.t1.Update(key, value)
		}
		return true
	}
	if c.t2.Contains(key) {
		if touch {
			c.t2.PushMRU(key, value)
		} else {
			c.t2.Update(key, value)
		}
		return true
	}
	return false
}

// del removes key from whichever list holds it. target is unchanged.
func (c *arcCore[K, V]) del(key K) bool {
	return c.t1.Delete(key) || c.t2.Delete(key) ||
		c.b1.Delete(key) || c.b2.Delete(key)
}

func (c *arcCore[K, V]) len() int {
	return c.t1.Len() + c.t2.Len()
}

// replace demotes one resident entry to its ghost list. T1 gives up
// its LRU entry when it is over target, or exactly at target while
// servicing a B2 ghost hit; otherwise T2 gives up its LRU entry. If
// the chosen list is empty, replace is a no-op.
func (c *arcCore[K, V]) replace(inB2 bool) {
	t1len := c.t1.Len()
	if t1len >= 1 && (t1len > c.target || (inB2 && t1len == c.target)) {
		if k, v, ok := c.t1.PopLRU(); ok {
			c.evicted(k, v)
			c.b1.PushMRU(k, struct{}{})
		}
		return
	}
	if k, v, ok := c.t2.PopLRU(); ok {
		c.evicted(k, v)
		c.b2.PushMRU(k, struct{}{})
	}
}

// adjust trims ghosts and/or residents ahead of a pure miss so that
// one entry can be admitted into T1 without breaking the directory
// bounds.
func (c *arcCore[K, V]) adjust() {
	l1 := c.t1.Len() + c.b1.Len()
	l2 := c.t2.Len() + c.b2.Len()
	switch {
	case l1 >= c.cap:
		// The recency directory is full.
		if c.t1.Len() < c.cap {
			c.b1.PopLRU()
			c.replace(false)
		} else {
			// T1 alone fills the cache and B1 is empty; the LRU
			// value is dropped without leaving a ghost behind.
			if k, v, ok := c.t1.PopLRU(); ok {
				c.evicted(k, v)
			}
		}
	case l1+l2 >= c.cap:
		if l1+l2 >= 2*c.cap {
			c.b2.PopLRU()
		}
		c.replace(false)
	}
}

func (c *arcCore[K, V]) evicted(key K, value V) {
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}

// adaptStep is the learning-rate term for target updates: the ghost
// list length ratio, floored, and never below 1. A zero denominator
// short-circuits so the division is never evaluated.
func adaptStep(num, den int) int {
	if den == 0 {
		return 1
	}
	if step := num / den; step > 1 {
		return step
	}
	return 1
}
