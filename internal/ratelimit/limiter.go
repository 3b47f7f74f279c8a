// Package ratelimit provides a per-user fixed-window request limiter.
// Buckets live in process memory only; counters reset on restart, which is
// acceptable for abuse throttling.
package ratelimit

import (
	"sync"
	"time"

	"github.com/majnugame/majnu-go/internal/dependencies/clock"
	"github.com/majnugame/majnu-go/internal/model"
)

type bucket struct {
	windowStart time.Time
	count       int
}

// Limiter counts events per user within a fixed window. The counter resets
// when the window elapses; within a window, events beyond the limit are
// denied.
type Limiter struct {
	mu      sync.Mutex
	clock   clock.Clock
	window  time.Duration
	limit   int
	buckets map[model.UserID]*bucket
}

// New creates a limiter allowing limit events per window
func New(clk clock.Clock, window time.Duration, limit int) *Limiter {
	return &Limiter{
		clock:   clk,
		window:  window,
		limit:   limit,
		buckets: make(map[model.UserID]*bucket),
	}
}

// Allow records one event for the user and reports whether it is within the
// limit for the current window.
func (l *Limiter) Allow(userID model.UserID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()

	b, ok := l.buckets[userID]
	if !ok || now.Sub(b.windowStart) > l.window {
		l.buckets[userID] = &bucket{windowStart: now, count: 1}
		return true
	}

	if b.count >= l.limit {
		return false
	}

	b.count++
	return true
}
