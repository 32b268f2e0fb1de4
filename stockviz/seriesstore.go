// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockviz

import (
	"context"
	"log"
	"stockchart/quoteapi"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zhangyunhao116/skipmap"
)

type UiUpdater interface {
	Invalidate()
}

type SeriesQuerier interface {
	QuerySeries(ctx context.Context, request <-chan quoteapi.SeriesRequest, response chan<- quoteapi.SeriesResponse)
}

// Last response for a symbol and period.
type SeriesEntry struct {
	quoteapi.SeriesResponse
	Updated time.Time
	// Incremented with every response, used to detect new data.
	Revision uint64
	Pending  bool
}

// Series data of all requested symbols, filled by a background query goroutine.
// Safe for concurrent use.
type SeriesStore struct {
	entries      *skipmap.StringMap[*SeriesEntry]
	entryMutex   sync.Mutex
	revision     *uint64 // use atomic accessor
	requestChan  chan quoteapi.SeriesRequest
	responseChan chan quoteapi.SeriesResponse
	uiUpdater    UiUpdater
	terminateWg  sync.WaitGroup
	refreshWg    sync.WaitGroup
	stopRefresh  chan struct{}
	stopOnce     sync.Once
}

func NewSeriesStore() *SeriesStore {
	return &SeriesStore{
		entries:     skipmap.NewString[*SeriesEntry](),
		revision:    new(uint64),
		stopRefresh: make(chan struct{}),
	}
}

func storeKey(symbol, period string) string {
	return symbol + "|" + period
}

func (s *SeriesStore) Initialize(ctx context.Context, querier SeriesQuerier, uiUpdater UiUpdater) {
	s.uiUpdater = uiUpdater
	s.requestChan = make(chan quoteapi.SeriesRequest, 128)
	s.responseChan = make(chan quoteapi.SeriesResponse, 128)
	s.terminateWg.Add(1)
	go s.handleResponses()
	go querier.QuerySeries(ctx, s.requestChan, s.responseChan)
}

func (s *SeriesStore) handleResponses() {
	defer s.terminateWg.Done()
	for resp := range s.responseChan {
		log.Printf("Updating series data %s %s.", resp.Symbol, resp.Period)
		s.entryMutex.Lock()
		entry := &SeriesEntry{
			SeriesResponse: resp,
			Updated:        time.Now(),
			Revision:       atomic.AddUint64(s.revision, 1),
		}
		// Keep previous data if a refresh failed.
		if prev, ok := s.entries.Load(storeKey(resp.Symbol, resp.Period)); ok && resp.Error != nil && len(prev.Series) > 0 {
			entry.SeriesResponse.Series = prev.Series
			entry.Name = prev.Name
			entry.DataSource = prev.DataSource
		}
		s.entries.Store(storeKey(resp.Symbol, resp.Period), entry)
		s.entryMutex.Unlock()
		if s.uiUpdater != nil {
			s.uiUpdater.Invalidate()
		}
	}
	log.Println("Terminating series update handler.")
}

// Request data unless it is already present or pending. Returns the current entry, if any.
func (s *SeriesStore) Request(symbol, period string) (SeriesEntry, bool) {
	key := storeKey(symbol, period)
	s.entryMutex.Lock()
	entry, ok := s.entries.Load(key)
	placeholder := &SeriesEntry{
		SeriesResponse: quoteapi.SeriesResponse{SeriesRequest: quoteapi.SeriesRequest{Symbol: symbol, Period: period}},
		Pending:        true,
	}
	if !ok {
		s.entries.Store(key, placeholder)
	}
	s.entryMutex.Unlock()
	if ok {
		return *entry, !entry.Pending
	}
	if !s.send(symbol, period) {
		s.dropPending(key, placeholder, false)
	}
	return SeriesEntry{}, false
}

// Request new data even if the entry exists, e.g. after an error. Existing data is kept until the response arrives.
func (s *SeriesStore) Reload(symbol, period string) {
	key := storeKey(symbol, period)
	s.entryMutex.Lock()
	entry := &SeriesEntry{SeriesResponse: quoteapi.SeriesResponse{SeriesRequest: quoteapi.SeriesRequest{Symbol: symbol, Period: period}}}
	prev, existed := s.entries.Load(key)
	if existed {
		*entry = *prev
	}
	entry.Pending = true
	s.entries.Store(key, entry)
	s.entryMutex.Unlock()
	if !s.send(symbol, period) {
		s.dropPending(key, entry, existed)
	}
}

// Undo the pending state of an entry whose request was dropped, unless a response replaced it.
func (s *SeriesStore) dropPending(key string, pending *SeriesEntry, keep bool) {
	s.entryMutex.Lock()
	defer s.entryMutex.Unlock()
	if entry, ok := s.entries.Load(key); !ok || entry != pending {
		return
	}
	if !keep {
		s.entries.Delete(key)
		return
	}
	cleared := *pending
	cleared.Pending = false
	s.entries.Store(key, &cleared)
}

// Request new data for all known entries.
func (s *SeriesStore) Refresh() {
	s.entries.Range(func(key string, entry *SeriesEntry) bool {
		if !entry.Pending {
			s.send(entry.Symbol, entry.Period)
		}
		return true
	})
}

// Refresh periodically until Terminate is called. A non-positive interval disables refreshing.
func (s *SeriesStore) StartRefresh(interval time.Duration) {
	if interval <= 0 {
		return
	}
	s.refreshWg.Add(1)
	go func() {
		defer s.refreshWg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopRefresh:
				return
			case <-ticker.C:
				s.Refresh()
			}
		}
	}()
}

func (s *SeriesStore) send(symbol, period string) bool {
	log.Printf("Requesting series data %s %s.", symbol, period)
	select {
	case s.requestChan <- quoteapi.SeriesRequest{Symbol: symbol, Period: period}:
		return true
	default:
		log.Printf("Request queue full, dropping request %s %s.", symbol, period)
		return false
	}
}

func (s *SeriesStore) Load(symbol, period string) (SeriesEntry, bool) {
	entry, ok := s.entries.Load(storeKey(symbol, period))
	if !ok {
		return SeriesEntry{}, false
	}
	return *entry, true
}

// Stop the request processing and wait for the handlers to finish.
func (s *SeriesStore) Terminate() {
	s.stopOnce.Do(func() {
		close(s.stopRefresh)
		s.refreshWg.Wait()
		if s.requestChan != nil {
			close(s.requestChan)
		}
	})
	s.terminateWg.Wait()
}
