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

import "github.com/pkg/errors"

// The cache itself never fails logically: a Get miss, a Delete of an
// absent key or an Update of an absent key are normal boolean
// returns. Errors are reserved for misuse at the construction and
// registry boundaries.
var (
	// ErrInvalidCapacity is returned when a cache is created with a
	// non-positive capacity.
	ErrInvalidCapacity = errors.New("arcache: capacity must be positive")

	// ErrNotFound is returned by registry lookups for names with no
	// registered cache.
	ErrNotFound = errors.New("arcache: no cache registered under name")

	// ErrDuplicateName is returned when registering a name that is
	// already taken.
	ErrDuplicateName = errors.New("arcache: name already registered")
)
