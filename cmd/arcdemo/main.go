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

// arcdemo drives an ARC cache over a synthetic or file-backed access
// stream and reports hit-ratio statistics and the learned target.
//
// Usage:
//
//	arcdemo -capacity 1000 -ops 1000000 -keyspace 10000 -zipf 1.25
//	arcdemo -capacity 1000 -trace accesses.lirs
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/stackmesh/arcache"
	"github.com/stackmesh/arcache/sim"
)

func main() {
	var (
		capacity = flag.Int("capacity", 1000, "cache capacity in entries")
		ops      = flag.Int("ops", 1_000_000, "number of accesses to run")
		keyspace = flag.Uint64("keyspace", 10_000, "number of distinct keys")
		zipf     = flag.Float64("zipf", 1.25, "zipfian skew (s > 1)")
		seed     = flag.Int64("seed", 1, "workload seed")
		trace    = flag.String("trace", "", "LIRS trace file (overrides the synthetic workload)")
	)
	flag.Parse()

	var stream sim.Simulator
	if *trace != "" {
		f, err := os.Open(*trace)
		if err != nil {
			log.Fatalf("open trace: %v", err)
		}
		defer f.Close()
		stream = sim.NewReader(sim.ParseLirs, f)
	} else {
		stream = sim.NewZipfian(*zipf, 2, *keyspace, *seed)
	}

	cache, err := arcache.New[uint64, uint64](*capacity)
	if err != nil {
		log.Fatalf("create cache: %v", err)
	}

	ran := 0
	for ; ran < *ops; ran++ {
		key, err := stream()
		if err == sim.ErrDone {
			break
		}
		if err != nil {
			log.Fatalf("access stream: %v", err)
		}
		if _, ok := cache.Get(key); !ok {
			cache.Put(key, key)
		}
	}

	m := cache.Metrics()
	fmt.Printf("accesses:   %s\n", humanize.Comma(int64(ran)))
	fmt.Printf("hits:       %s\n", humanize.Comma(int64(m.Hits())))
	fmt.Printf("misses:     %s\n", humanize.Comma(int64(m.Misses())))
	fmt.Printf("evictions:  %s\n", humanize.Comma(int64(m.KeysEvicted())))
	fmt.Printf("ghost hits: %s recency, %s frequency\n",
		humanize.Comma(int64(m.RecencyGhostHits())),
		humanize.Comma(int64(m.FrequencyGhostHits())))
	fmt.Printf("hit ratio:  %.4f\n", m.Ratio())
	fmt.Printf("resident:   %d of %d (T1 %d, T2 %d)\n",
		cache.Len(), cache.Cap(), len(cache.EntriesT1()), len(cache.EntriesT2()))
	fmt.Printf("target:     %d\n", cache.Target())
}
