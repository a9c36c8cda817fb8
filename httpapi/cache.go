/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package httpapi

import (
	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"
)

// responseCache memoizes serialized /data responses. Keys embed the
// snapshot fingerprint, so a rebuild rotates every key and stale entries
// simply age out of the LRU; no explicit invalidation is needed.
type responseCache struct {
	lru *freelru.SyncedLRU[string, []byte]
}

// newResponseCache returns a cache holding up to n responses, or a disabled
// cache when n <= 0.
func newResponseCache(n int) *responseCache {
	if n <= 0 {
		return &responseCache{}
	}
	lru, err := freelru.NewSynced[string, []byte](uint32(n), hashKey)
	if err != nil {
		// Only reachable with an invalid capacity.
		return &responseCache{}
	}
	return &responseCache{lru: lru}
}

func (c *responseCache) get(key string) ([]byte, bool) {
	if c.lru == nil {
		return nil, false
	}
	return c.lru.Get(key)
}

func (c *responseCache) add(key string, body []byte) {
	if c.lru == nil {
		return
	}
	c.lru.Add(key, body)
}

func hashKey(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}
