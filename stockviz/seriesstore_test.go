// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockviz

import (
	"context"
	"errors"
	"stockchart/quoteapi"
	"stockchart/stockval"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testQuerier struct {
	calls int32
	fail  atomic.Bool
}

func (q *testQuerier) QuerySeries(ctx context.Context, request <-chan quoteapi.SeriesRequest, response chan<- quoteapi.SeriesResponse) {
	defer close(response)
	for req := range request {
		n := atomic.AddInt32(&q.calls, 1)
		resp := quoteapi.SeriesResponse{SeriesRequest: req, Name: "Test " + req.Symbol}
		if q.fail.Load() {
			resp.Error = errors.New("backend unavailable")
		} else {
			for i := 0; i < int(n)*10; i++ {
				resp.Series = append(resp.Series, stockval.Record{Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10})
			}
		}
		response <- resp
	}
}

type testUpdater struct {
	invalidated chan struct{}
}

func (u *testUpdater) Invalidate() {
	select {
	case u.invalidated <- struct{}{}:
	default:
	}
}

func newTestStore(t *testing.T) (*SeriesStore, *testQuerier, *testUpdater) {
	s := NewSeriesStore()
	q := &testQuerier{}
	u := &testUpdater{invalidated: make(chan struct{}, 16)}
	s.Initialize(context.Background(), q, u)
	t.Cleanup(s.Terminate)
	return s, q, u
}

func waitInvalidate(t *testing.T, u *testUpdater) {
	select {
	case <-u.invalidated:
	case <-time.After(time.Second * 5):
		assert.FailNow(t, "no ui update")
	}
}

func TestSeriesStoreRequest(t *testing.T) {
	s, q, u := newTestStore(t)
	_, ok := s.Request("AAPL", "1y")
	assert.False(t, ok)
	// Pending requests are not sent twice.
	s.Request("AAPL", "1y")
	waitInvalidate(t, u)

	entry, ok := s.Request("AAPL", "1y")
	assert.True(t, ok)
	assert.NoError(t, entry.Error)
	assert.Equal(t, "Test AAPL", entry.Name)
	assert.Len(t, entry.Series, 10)
	assert.NotZero(t, entry.Revision)
	assert.False(t, entry.Pending)
	assert.Equal(t, int32(1), atomic.LoadInt32(&q.calls))

	_, ok = s.Load("AAPL", "5d")
	assert.False(t, ok)
}

func TestSeriesStoreReloadKeepsDataOnError(t *testing.T) {
	s, q, u := newTestStore(t)
	s.Request("MSFT", "1mo")
	waitInvalidate(t, u)
	first, _ := s.Load("MSFT", "1mo")

	q.fail.Store(true)
	s.Reload("MSFT", "1mo")
	pending, ok := s.Load("MSFT", "1mo")
	assert.True(t, ok)
	assert.True(t, pending.Pending)
	assert.Len(t, pending.Series, 10)
	waitInvalidate(t, u)

	entry, ok := s.Request("MSFT", "1mo")
	assert.True(t, ok)
	assert.Error(t, entry.Error)
	assert.Len(t, entry.Series, 10)
	assert.Equal(t, "Test MSFT", entry.Name)
	assert.Greater(t, entry.Revision, first.Revision)
}

func TestSeriesStoreRefresh(t *testing.T) {
	s, q, u := newTestStore(t)
	s.Request("TSLA", "1y")
	waitInvalidate(t, u)
	s.Refresh()
	waitInvalidate(t, u)
	entry, _ := s.Load("TSLA", "1y")
	assert.Len(t, entry.Series, 20)
	assert.Equal(t, int32(2), atomic.LoadInt32(&q.calls))
}

func TestSeriesStorePeriodicRefresh(t *testing.T) {
	s, q, u := newTestStore(t)
	s.Request("2330.TW", "1y")
	waitInvalidate(t, u)
	s.StartRefresh(time.Millisecond * 20)
	waitInvalidate(t, u)
	s.Terminate()
	assert.GreaterOrEqual(t, atomic.LoadInt32(&q.calls), int32(2))
}

func TestSeriesStoreDroppedRequest(t *testing.T) {
	s := NewSeriesStore()
	// Nobody receives, every request is dropped.
	s.requestChan = make(chan quoteapi.SeriesRequest)
	t.Cleanup(s.Terminate)

	_, ok := s.Request("AAPL", "1y")
	assert.False(t, ok)
	_, ok = s.Load("AAPL", "1y")
	assert.False(t, ok)

	s.entries.Store(storeKey("MSFT", "1y"), &SeriesEntry{
		SeriesResponse: quoteapi.SeriesResponse{
			SeriesRequest: quoteapi.SeriesRequest{Symbol: "MSFT", Period: "1y"},
			Series:        stockval.Series{{Open: 1, High: 2, Low: 0.5, Close: 1.5}},
		},
		Revision: 1,
	})
	s.Reload("MSFT", "1y")
	entry, ok := s.Load("MSFT", "1y")
	if assert.True(t, ok) {
		assert.False(t, entry.Pending)
		assert.Len(t, entry.Series, 1)
	}
	// Without previous data nothing is left behind.
	s.Reload("AAPL", "1y")
	_, ok = s.Load("AAPL", "1y")
	assert.False(t, ok)
}
