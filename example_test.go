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

package arcache_test

import (
	"context"
	"fmt"

	"github.com/stackmesh/arcache"
)

func ExampleNew() {
	cache, _ := arcache.New[string, int](128)

	cache.Put("a", 1)
	cache.Put("b", 2)

	if v, ok := cache.Get("a"); ok {
		fmt.Println("a =", v)
	}
	if _, ok := cache.Get("missing"); !ok {
		fmt.Println("missing is a miss")
	}
	// Output:
	// a = 1
	// missing is a miss
}

func ExampleCache_GetOrLoad() {
	cache, _ := arcache.New[string, string](128)

	load := func(_ context.Context, key string) (string, error) {
		return "loaded:" + key, nil
	}

	v, _ := cache.GetOrLoad(context.Background(), "user:7", load)
	fmt.Println(v)

	// The second call is served from cache.
	v, _ = cache.GetOrLoad(context.Background(), "user:7", load)
	fmt.Println(v)
	// Output:
	// loaded:user:7
	// loaded:user:7
}

func ExampleRegistry() {
	registry := arcache.NewRegistry[string, []byte]()

	if _, err := registry.Register("blobs", 1024); err != nil {
		fmt.Println(err)
		return
	}

	cache, _ := registry.Lookup("blobs")
	cache.Put("k", []byte("v"))
	fmt.Println(cache.Len(), registry.Names())
	// Output:
	// 1 [blobs]
}
