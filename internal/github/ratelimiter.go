package github

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
)

// * RateTracker records the rate-limit headers GitHub returns. Unauthenticated
// * callers get 60 requests an hour, so a handful of page loads can exhaust
// * the budget. It only reports; requests are never delayed or retried.
type RateTracker struct {
	mu        sync.Mutex
	remaining int
	limit     int
	reset     time.Time
	lowWarn   int
}

func NewRateTracker() *RateTracker {
	return &RateTracker{
		remaining: -1,
		limit:     -1,
		lowWarn:   10,
	}
}

// * Snapshot returns the last observed remaining budget, limit and reset
// * time. Remaining and limit are -1 until a response carried the headers.
func (r *RateTracker) Snapshot() (remaining, limit int, reset time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, r.limit, r.reset
}

func (r *RateTracker) updateFromHeaders(headers http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := headers.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}

	if limit := headers.Get("X-RateLimit-Limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			r.limit = val
		}
	}

	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.reset = time.Unix(val, 0)
		}
	}

	if r.remaining >= 0 && r.remaining < r.lowWarn {
		logger.Warn("[RateTracker] Low rate limit: %d remaining. Resets at %s", r.remaining, r.reset.Format(time.RFC1123))
	}
}

func (r *RateTracker) Middleware(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.Error("Network error in RoundTrip: %v", err)
			return nil, err
		}

		r.updateFromHeaders(resp.Header)
		return resp, nil
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
