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
	"testing"

	"github.com/stackmesh/arcache/sim"
)

func benchWorkload(n int) []uint64 {
	return sim.Collection(sim.NewZipfian(1.25, 2, 8192, 1), uint64(n))
}

func BenchmarkCacheGetHit(b *testing.B) {
	c, _ := New[uint64, uint64](1024)
	for i := uint64(0); i < 1024; i++ {
		c.Put(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(uint64(i) % 1024)
	}
}

func BenchmarkCachePeek(b *testing.B) {
	c, _ := New[uint64, uint64](1024)
	for i := uint64(0); i < 1024; i++ {
		c.Put(i, i)
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := uint64(0)
		for pb.Next() {
			c.Peek(i % 1024)
			i++
		}
	})
}

func BenchmarkCachePutZipf(b *testing.B) {
	keys := benchWorkload(1 << 16)
	c, _ := New[uint64, uint64](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := keys[i&(len(keys)-1)]
		c.Put(k, k)
	}
}

func BenchmarkShardedGetParallel(b *testing.B) {
	s, _ := NewSharded[uint64, uint64](8192, 16)
	for i := uint64(0); i < 8192; i++ {
		s.Put(i, i)
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := uint64(0)
		for pb.Next() {
			s.Get(i % 8192)
			i++
		}
	})
}

func BenchmarkOrderedListPushMRU(b *testing.B) {
	l := newOrderedList[uint64, uint64]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.PushMRU(uint64(i)%4096, uint64(i))
	}
}
