// Copyright 2025
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dataset

import (
	"context"
	"os"

	"github.com/alphadose/haxmap"
	"github.com/rs/zerolog"

	"github.com/penny-vault/fundview/data"
)

// LoadFunc builds a Dataset from a source file set.
type LoadFunc func(ctx context.Context, sources Sources) (*Dataset, error)

// Cache keeps one Dataset per source file set. An entry is served for as long
// as none of its files changed size or modification time; there is no time
// based expiry.
type Cache struct {
	entries *haxmap.Map[string, *Dataset]
	load    LoadFunc
}

// NewCache returns a cache backed by Load.
func NewCache() *Cache {
	return NewCacheWithLoader(Load)
}

// NewCacheWithLoader returns a cache that builds datasets with load.
func NewCacheWithLoader(load LoadFunc) *Cache {
	return &Cache{
		entries: haxmap.New[string, *Dataset](),
		load:    load,
	}
}

// Get returns the dataset for sources, loading it on first use and reloading
// it when a source file changed on disk.
func (cache *Cache) Get(ctx context.Context, sources Sources) (*Dataset, error) {
	logger := zerolog.Ctx(ctx)
	key := sources.Key()

	if cached, ok := cache.entries.Get(key); ok {
		if !cached.changedOnDisk() {
			logger.Debug().Str("CacheKey", key).Msg("dataset cache hit")
			return cached, nil
		}
		logger.Info().Msg("source files changed, reloading dataset")
	}

	myDataset, err := cache.load(ctx, sources)
	if err != nil {
		return nil, err
	}

	cache.entries.Set(key, myDataset)
	return myDataset, nil
}

// Invalidate drops the dataset cached for sources.
func (cache *Cache) Invalidate(sources Sources) {
	cache.entries.Del(sources.Key())
}

// Purge drops every cached dataset.
func (cache *Cache) Purge() {
	var keys []string
	cache.entries.ForEach(func(key string, _ *Dataset) bool {
		keys = append(keys, key)
		return true
	})
	if len(keys) > 0 {
		cache.entries.Del(keys...)
	}
}

// Len is the number of cached datasets.
func (cache *Cache) Len() int {
	return int(cache.entries.Len())
}

// changedOnDisk reports whether any source file differs from what was read.
// Datasets without read statistics (built with New) never change.
func (myDataset *Dataset) changedOnDisk() bool {
	for _, key := range data.TableKeys {
		stats, ok := myDataset.stats[key]
		if !ok {
			continue
		}

		info, err := os.Stat(stats.Path)
		if err != nil {
			return true
		}

		if info.Size() != stats.Size || !info.ModTime().Equal(stats.ModTime) {
			return true
		}
	}

	return false
}
