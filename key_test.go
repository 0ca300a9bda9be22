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

	"github.com/stretchr/testify/require"
)

func TestKeyToHashDeterministic(t *testing.T) {
	h1, c1 := KeyToHash("some key")
	h2, c2 := KeyToHash("some key")
	require.Equal(t, h1, h2)
	require.Equal(t, c1, c2)

	h3, _ := KeyToHash("some other key")
	require.NotEqual(t, h1, h3)
}

func TestKeyToHashStringBytesAgree(t *testing.T) {
	hs, cs := KeyToHash("payload")
	hb, cb := KeyToHash([]byte("payload"))
	require.Equal(t, hs, hb)
	require.Equal(t, cs, cb)
}

func TestKeyToHashIntegerIdentity(t *testing.T) {
	h, conflict := KeyToHash(uint64(42))
	require.Equal(t, uint64(42), h)
	require.Equal(t, uint64(0), conflict)

	h, _ = KeyToHash(int(7))
	require.Equal(t, uint64(7), h)

	h, _ = KeyToHash(int64(-1))
	require.Equal(t, uint64(0xffffffffffffffff), h)

	h, _ = KeyToHash(byte(9))
	require.Equal(t, uint64(9), h)
}

func TestKeyToHashNil(t *testing.T) {
	h, conflict := KeyToHash(nil)
	require.Equal(t, uint64(0), h)
	require.Equal(t, uint64(0), conflict)
}

func TestKeyToHashUnsupportedPanics(t *testing.T) {
	require.Panics(t, func() { KeyToHash(3.14) })
	require.Panics(t, func() { KeyToHash(struct{ a int }{1}) })
}
