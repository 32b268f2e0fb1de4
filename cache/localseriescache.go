// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package cache

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"stockchart/config"
	"sync"
	"time"

	"github.com/lotodore/localcache"
)

type localSeriesCache struct {
	data     *localcache.Cache
	maxAge   time.Duration
	initLock sync.Mutex
}

// Create a file based cache in the user cache directory. Entries expire after maxAge.
func NewLocalSeriesCache(name string, maxAge time.Duration) (SeriesCache, error) {
	c := localSeriesCache{
		maxAge: maxAge,
	}
	var err error
	c.data, err = localcache.New(filepath.Join(config.AppName, name))
	if err != nil {
		return nil, fmt.Errorf("error initializing series cache: %w", err)
	}
	return &c, nil
}

func (c *localSeriesCache) GetSeriesData(ctx context.Context, symbol, period string, req func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	key := CacheKey(symbol, period)
	err := c.data.PurgeKey(key, c.maxAge)
	if err != nil {
		log.Printf("error purging cache %s, chart data may be outdated", key)
	}
	if data := c.read(key); data != nil {
		return data, nil
	}
	c.initLock.Lock()
	defer c.initLock.Unlock()
	// retry reading cache within lock, to avoid requesting the data twice.
	if data := c.read(key); data != nil {
		return data, nil
	}
	data, err := req(ctx)
	if err != nil {
		return nil, err
	}
	err = c.data.WriteFile(key, data)
	if err != nil {
		log.Printf("error writing cache %s: %v", key, err)
	}
	return data, nil
}

func (c *localSeriesCache) Invalidate(symbol, period string) {
	key := CacheKey(symbol, period)
	if err := c.data.Remove(key); err != nil {
		log.Printf("error deleting cache %s, chart data may be invalid", key)
	}
}

func (c *localSeriesCache) read(key string) []byte {
	data, err := c.data.ReadFile(key)
	if err != nil || len(data) == 0 {
		return nil
	}
	return data
}
