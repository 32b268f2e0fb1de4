// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package mock

import (
	"context"
	"stockchart/cache"
	"sync"
)

// In-memory series cache, records invalidations.
type TestSeriesCache struct {
	mutex       sync.Mutex
	data        map[string][]byte
	Requests    int
	Invalidated []string
}

func NewSeriesCache() *TestSeriesCache {
	return &TestSeriesCache{data: make(map[string][]byte)}
}

var _ cache.SeriesCache = (*TestSeriesCache)(nil)

func (c *TestSeriesCache) Put(symbol, period string, data []byte) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data[cache.CacheKey(symbol, period)] = data
}

func (c *TestSeriesCache) GetSeriesData(ctx context.Context, symbol, period string, req func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	key := cache.CacheKey(symbol, period)
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if d, ok := c.data[key]; ok {
		return d, nil
	}
	c.Requests++
	d, err := req(ctx)
	if err != nil {
		return nil, err
	}
	c.data[key] = d
	return d, nil
}

func (c *TestSeriesCache) Invalidate(symbol, period string) {
	key := cache.CacheKey(symbol, period)
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.data, key)
	c.Invalidated = append(c.Invalidated, key)
}
