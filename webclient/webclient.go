// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package webclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"time"
)

// Error body of the quote backend.
type ErrorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion"`
}

type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("query returned error code %d (%s)", e.StatusCode, e.Message)
}

// Server errors and rate limiting are considered to be temporary.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func ParseJsonResponse(resp *http.Response, v any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		msg := string(b)
		var e ErrorResponse
		if json.Unmarshal(b, &e) == nil && len(e.Error) > 0 {
			msg = e.Error
			if len(e.Suggestion) > 0 {
				msg += ": " + e.Suggestion
			}
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	m, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || m != "application/json" {
		return fmt.Errorf("invalid content type %s", resp.Header.Get("Content-Type"))
	}

	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// Http client with rate limiting and retries of temporary failures.
type Client struct {
	Http       *http.Client
	Limiter    *RateLimiter
	MaxRetries int
	RetryPause time.Duration
}

func NewClient(timeout time.Duration, limiter *RateLimiter, maxRetries int) *Client {
	return &Client{
		Http:       &http.Client{Timeout: timeout},
		Limiter:    limiter,
		MaxRetries: maxRetries,
		RetryPause: time.Second,
	}
}

// Send a GET request and return the body of a successful json response.
// Transport errors, rate limiting and server errors are retried.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying %s (%d/%d): %v", url, attempt, c.MaxRetries, lastErr)
		}
		body, retry, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) get(ctx context.Context, url string) (body []byte, retry bool, err error) {
	if c.Limiter != nil {
		if err = c.Limiter.Wait(ctx); err != nil {
			return nil, false, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.Http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, err
		}
		return nil, c.pause(ctx), err
	}
	defer resp.Body.Close()
	if c.Limiter != nil {
		retry, err := c.Limiter.HandleResponseWithWait(ctx, resp)
		if err != nil {
			return nil, false, err
		}
		if retry {
			return nil, true, &StatusError{StatusCode: resp.StatusCode, Message: "rate limited"}
		}
	}
	var raw json.RawMessage
	err = ParseJsonResponse(resp, &raw)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Temporary() {
		return nil, c.pause(ctx), err
	}
	if err != nil {
		return nil, false, err
	}
	return raw, false, nil
}

// Wait before the next attempt, returns false if the context was cancelled.
func (c *Client) pause(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.RetryPause):
		return true
	}
}
