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
	"math/rand"
	"runtime"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/stackmesh/arcache/sim"
)

func TestStressConcurrentMixedOps(t *testing.T) {
	c, err := New[uint64, uint64](128)
	require.NoError(t, err)

	g := new(errgroup.Group)
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		w := w
		g.Go(func() error {
			r := rand.New(rand.NewSource(int64(w + 1)))
			for i := 0; i < 10_000; i++ {
				k := uint64(r.Intn(512))
				switch r.Intn(10) {
				case 0, 1, 2, 3:
					c.Put(k, k)
				case 4, 5, 6:
					if v, ok := c.Get(k); ok && v != k {
						return errors.Errorf("key %d returned %d", k, v)
					}
				case 7:
					if v, ok := c.Peek(k); ok && v != k {
						return errors.Errorf("key %d returned %d", k, v)
					}
				case 8:
					c.Update(k, k, r.Intn(2) == 0)
				default:
					c.Delete(k)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assertInvariantsUint(t, c)
}

func assertInvariantsUint(t *testing.T, c *Cache[uint64, uint64]) {
	t.Helper()
	core := c.core
	require.LessOrEqual(t, core.t1.Len()+core.t2.Len(), core.cap)
	require.LessOrEqual(t, core.t1.Len()+core.b1.Len(), core.cap)
	require.LessOrEqual(t, core.t2.Len()+core.b2.Len(), 2*core.cap)
	require.GreaterOrEqual(t, core.target, 0)
	require.LessOrEqual(t, core.target, core.cap)
}

func TestStressSharded(t *testing.T) {
	s, err := NewSharded[uint64, uint64](1024, 16)
	require.NoError(t, err)

	g := new(errgroup.Group)
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		w := w
		g.Go(func() error {
			r := rand.New(rand.NewSource(int64(w + 100)))
			for i := 0; i < 10_000; i++ {
				k := uint64(r.Intn(4096))
				if v, ok := s.Get(k); ok {
					if v != k {
						return errors.Errorf("key %d returned %d", k, v)
					}
				} else {
					s.Put(k, k)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.LessOrEqual(t, s.Len(), s.Cap())
}

// TestStressHitRatio sanity-checks adaptation on a skewed workload:
// with a Zipfian stream over 10x the cache's capacity, ARC should
// serve well over half the accesses from cache.
func TestStressHitRatio(t *testing.T) {
	c, err := New[uint64, uint64](1000)
	require.NoError(t, err)

	key := sim.NewZipfian(1.25, 2, 10_000, 0x5eed)
	for i := 0; i < 100_000; i++ {
		k, err := key()
		require.NoError(t, err)
		if _, ok := c.Get(k); !ok {
			c.Put(k, k)
		}
	}

	ratio := c.Metrics().Ratio()
	t.Logf("hit ratio: %.4f, target: %d", ratio, c.Target())
	require.Greater(t, ratio, 0.5)
}
