// Package ratelimiter throttles calls to upstream market APIs.
package ratelimiter

import (
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface limits how often an operation such as an API call may run.
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter allows limit calls per interval and sleeps once the budget is spent.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // calls allowed per interval
	interval  time.Duration // window after which the count resets
	count     int
	lastReset time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewRateLimiter creates a RateLimiter.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// WaitIfNeeded records a call and blocks until the next window when the limit is exceeded.
func (rl *RateLimiter) WaitIfNeeded() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		wait := rl.interval - now.Sub(rl.lastReset)
		if wait > 0 {
			slog.Info("rate limit reached, sleeping", "limit", rl.limit, "sleep", wait)
			rl.sleep(wait)
		}
		rl.count = 1
		rl.lastReset = rl.now()
	}
}
