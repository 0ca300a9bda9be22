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
	"bytes"
	"fmt"
	"sync/atomic"
)

type metricType int

const (
	// The following 2 keep track of hits and misses.
	hit metricType = iota
	miss
	// The following 3 keep track of keys added, updated and evicted.
	keyAdd
	keyUpdate
	keyEvict
	// The following 2 classify ghost hits, which is what drives the
	// adaptive target: B1 hits reward recency, B2 hits frequency.
	recencyGhostHit
	frequencyGhostHit
	// This should be the final enum. Other enums should be set before this.
	doNotUse
)

func stringFor(t metricType) string {
	switch t {
	case hit:
		return "hit"
	case miss:
		return "miss"
	case keyAdd:
		return "keys-added"
	case keyUpdate:
		return "keys-updated"
	case keyEvict:
		return "keys-evicted"
	case recencyGhostHit:
		return "recency-ghost-hits"
	case frequencyGhostHit:
		return "frequency-ghost-hits"
	default:
		return "unidentified"
	}
}

// Metrics holds live performance counters for every cache that
// reports into it (one cache by default, several via WithMetrics).
// All counters are updated atomically and may be read while the cache
// is in use.
type Metrics struct {
	all [doNotUse]uint64
}

func newMetrics() *Metrics {
	return &Metrics{}
}

// NewMetrics creates a standalone recorder, typically to share across
// caches via WithMetrics.
func NewMetrics() *Metrics {
	return newMetrics()
}

func (m *Metrics) add(t metricType, delta uint64) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.all[t], delta)
}

func (m *Metrics) get(t metricType) uint64 {
	if m == nil {
		return 0
	}
	return atomic.LoadUint64(&m.all[t])
}

func (m *Metrics) classify(ok bool) {
	if ok {
		m.add(hit, 1)
	} else {
		m.add(miss, 1)
	}
}

// Hits is the number of Get/Peek calls where a value was found.
func (m *Metrics) Hits() uint64 {
	return m.get(hit)
}

// Misses is the number of Get/Peek calls where no value was found.
func (m *Metrics) Misses() uint64 {
	return m.get(miss)
}

// KeysAdded is the number of Put calls that admitted a new entry.
func (m *Metrics) KeysAdded() uint64 {
	return m.get(keyAdd)
}

// KeysUpdated is the number of Put/Update calls that refreshed an
// existing resident entry.
func (m *Metrics) KeysUpdated() uint64 {
	return m.get(keyUpdate)
}

// KeysEvicted is the number of resident values discarded, whether by
// ghost demotion or hard eviction.
func (m *Metrics) KeysEvicted() uint64 {
	return m.get(keyEvict)
}

// RecencyGhostHits is the number of Put calls that re-admitted a B1
// ghost. Each one raises the adaptive target unless it is already at
// capacity.
func (m *Metrics) RecencyGhostHits() uint64 {
	return m.get(recencyGhostHit)
}

// FrequencyGhostHits is the number of Put calls that re-admitted a B2
// ghost. Each one lowers the adaptive target unless it is already
// zero.
func (m *Metrics) FrequencyGhostHits() uint64 {
	return m.get(frequencyGhostHit)
}

// Ratio is the number of Hits over all accesses (Hits + Misses).
func (m *Metrics) Ratio() float64 {
	if m == nil {
		return 0.0
	}
	hits, misses := m.get(hit), m.get(miss)
	if hits == 0 && misses == 0 {
		return 0.0
	}
	return float64(hits) / float64(hits+misses)
}

// Clear resets all the counters.
func (m *Metrics) Clear() {
	if m == nil {
		return
	}
	for i := range m.all {
		atomic.StoreUint64(&m.all[i], 0)
	}
}

// String returns a string representation of the metrics.
func (m *Metrics) String() string {
	if m == nil {
		return ""
	}
	var buf bytes.Buffer
	for i := 0; i < int(doNotUse); i++ {
		t := metricType(i)
		fmt.Fprintf(&buf, "%s: %d ", stringFor(t), m.get(t))
	}
	fmt.Fprintf(&buf, "gets-total: %d ", m.get(hit)+m.get(miss))
	fmt.Fprintf(&buf, "hit-ratio: %.2f", m.Ratio())
	return buf.String()
}
