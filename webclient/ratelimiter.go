// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package webclient

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const MinWaitTime = time.Millisecond * 250
const MaxRetryAfter = time.Second * 30

// Client side fixed window rate limiter.
// A Retry-After response of the server pauses all requests of the limiter.
type RateLimiter struct {
	mutex       sync.Mutex
	interval    time.Duration
	limit       int
	count       int
	windowStart time.Time
	pausedUntil time.Time
}

// Create a rate limiter which allows limit requests per interval.
// A limit of zero disables limitation.
func NewRateLimiter(interval time.Duration, limit uint32) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		limit:    int(limit),
	}
}

// Wait until the next request is allowed.
func (l *RateLimiter) Wait(ctx context.Context) error {
	for {
		wait := l.reserve(time.Now())
		if wait <= 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Count a request if possible, otherwise return the time to wait.
func (l *RateLimiter) reserve(now time.Time) time.Duration {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if now.Before(l.pausedUntil) {
		return l.pausedUntil.Sub(now)
	}
	if l.limit == 0 {
		return 0
	}
	if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.interval {
		l.windowStart = now
		l.count = 0
	}
	if l.count < l.limit {
		l.count++
		return 0
	}
	return l.windowStart.Add(l.interval).Sub(now)
}

// Return the remaining count of the current interval or max int if not limited.
func (l *RateLimiter) Remaining() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.limit == 0 {
		return math.MaxInt
	}
	if l.windowStart.IsZero() || time.Since(l.windowStart) >= l.interval {
		return l.limit
	}
	return max(l.limit-l.count, 0)
}

func (l *RateLimiter) pause(d time.Duration) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if until := time.Now().Add(d); until.After(l.pausedUntil) {
		l.pausedUntil = until
	}
}

// Returns whether the request should be retried, after waiting as requested by the server.
func (l *RateLimiter) HandleResponseWithWait(ctx context.Context, resp *http.Response) (retry bool, err error) {
	if resp.StatusCode != http.StatusTooManyRequests {
		return false, nil
	}
	wait := MinWaitTime
	if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds > 0 {
		wait = min(time.Duration(seconds)*time.Second, MaxRetryAfter)
	}
	l.pause(wait)
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-time.After(wait):
		return true, nil
	}
}
