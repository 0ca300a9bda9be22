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

// Package sim generates and parses key access streams for driving
// caches in benchmarks and hit-ratio experiments.
package sim

import (
	"bufio"
	"io"
	"math/rand"
	"strconv"

	"github.com/pkg/errors"
)

// ErrDone is returned by a Simulator once its stream is exhausted.
// Generated streams never end; file-backed streams do.
var ErrDone = errors.New("sim: access stream is done")

// Simulator yields the next key of an access stream.
type Simulator func() (uint64, error)

// NewZipfian returns a stream with a Zipfian distribution: a small
// set of keys receives most of the accesses. s must be > 1 and v >= 1;
// keys fall in [0, n).
func NewZipfian(s, v float64, n uint64, seed int64) Simulator {
	z := rand.NewZipf(rand.New(rand.NewSource(seed)), s, v, n-1)
	return func() (uint64, error) {
		return z.Uint64(), nil
	}
}

// NewUniform returns a stream with keys drawn uniformly from [0, n).
func NewUniform(n uint64, seed int64) Simulator {
	m := int64(n)
	r := rand.New(rand.NewSource(seed))
	return func() (uint64, error) {
		return uint64(r.Int63n(m)), nil
	}
}

// Parser turns one line of a trace file into a key.
type Parser func(string, error) (uint64, error)

// NewReader returns a stream backed by a trace file, one key per
// line, decoded by parser.
func NewReader(parser Parser, file io.Reader) Simulator {
	b := bufio.NewReader(file)
	return func() (uint64, error) {
		return parser(b.ReadString('\n'))
	}
}

// ParseLirs parses a line of a LIRS-format trace: a decimal key
// followed by CRLF.
func ParseLirs(line string, err error) (uint64, error) {
	if line != "" {
		// example: "1\r\n"
		return strconv.ParseUint(line[:len(line)-2], 10, 64)
	}
	return 0, ErrDone
}

// ParsePlain parses a line holding a bare decimal key, tolerating a
// trailing LF or CRLF.
func ParsePlain(line string, err error) (uint64, error) {
	if line == "" {
		return 0, ErrDone
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return strconv.ParseUint(line, 10, 64)
}

// Collection materializes the next size keys of a stream.
func Collection(simulator Simulator, size uint64) []uint64 {
	collection := make([]uint64, size)
	for i := range collection {
		collection[i], _ = simulator()
	}
	return collection
}
