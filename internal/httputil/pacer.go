// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by API clients.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces consecutive requests at least Interval apart. It keeps
// OpenAlex polite-pool traffic under the documented ten requests per
// second. A Pacer never re-sends a request: a failed call is returned
// to the caller as is.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a Pacer that allows one request per interval. A zero or
// negative interval returns a Pacer that never waits.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next request may be sent or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}

// Do waits for the pacer and then executes req with client. If the context
// is cancelled while waiting, Do returns ctx.Err() without sending.
func (p *Pacer) Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	if err := p.Wait(ctx); err != nil {
		return nil, err
	}
	return client.Do(req.WithContext(ctx))
}

// DrainClose discards the rest of the body and closes it so the underlying
// connection can be reused.
func DrainClose(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
