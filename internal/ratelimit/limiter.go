// Package ratelimit throttles simulation runs per MCP tool and per HTTP client.
package ratelimit

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Limiter is a token bucket keyed by caller. Every key starts with a full
// bucket of burst tokens that refills at rate tokens per second.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64
	burst   int
	idle    time.Duration
	swept   time.Time
	nowFunc func() time.Time
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// NewLimiter returns a limiter refilling rate tokens per second up to burst.
func NewLimiter(rate float64, burst int) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		burst:   burst,
		idle:    10 * time.Minute,
		nowFunc: time.Now,
	}
}

// PerMinute allows n requests per minute per key with a burst of max(n/6, 1).
func PerMinute(n int) *Limiter {
	return NewLimiter(float64(n)/60.0, max(n/6, 1))
}

// Allow consumes one token for key and reports whether one was available.
func (l *Limiter) Allow(key string) bool {
	ok, _ := l.Take(key)
	return ok
}

// Take consumes one token for key. When the bucket is empty it returns false
// and the time until the next token; with a zero rate that wait is zero.
func (l *Limiter) Take(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.burst), seen: now}
		l.buckets[key] = b
	}
	if dt := now.Sub(b.seen).Seconds(); dt > 0 {
		b.tokens = math.Min(b.tokens+l.rate*dt, float64(l.burst))
	}
	b.seen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if l.rate <= 0 {
		return false, 0
	}
	wait := time.Duration((1 - b.tokens) / l.rate * float64(time.Second))
	return false, wait
}

// sweep forgets keys idle long enough to have refilled, so client IPs do not
// accumulate forever in a long-running server.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.swept) < l.idle {
		return
	}
	l.swept = now
	for key, b := range l.buckets {
		if now.Sub(b.seen) >= l.idle && b.tokens+l.rate*now.Sub(b.seen).Seconds() >= float64(l.burst) {
			delete(l.buckets, key)
		}
	}
}

// Len returns the number of keys currently tracked.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Tool and route names with default limits.
const (
	ToolRun     = "tagsim_run"
	ToolPresets = "tagsim_presets"
	RouteRun    = "run_demo"
)

// ToolLimiters maps tool names to their rate limiters.
type ToolLimiters map[string]*Limiter

// NewToolLimiters returns the default per-tool limits. A run simulates,
// builds and renders a graph, so it is limited far more tightly than the
// preset listing.
func NewToolLimiters() ToolLimiters {
	return ToolLimiters{
		ToolRun:     NewLimiter(10.0/60.0, 3),
		ToolPresets: NewLimiter(1.0, 10),
		RouteRun:    PerMinute(30),
	}
}

// CheckLimit returns an error when toolName is over its limit. Tools without
// a limiter are never limited.
func CheckLimit(limiters ToolLimiters, toolName string) error {
	limiter, ok := limiters[toolName]
	if !ok {
		return nil
	}
	if ok, wait := limiter.Take(toolName); !ok {
		if wait > 0 {
			return fmt.Errorf("rate limit exceeded for %s, retry in %s", toolName, wait.Round(time.Second))
		}
		return fmt.Errorf("rate limit exceeded for %s", toolName)
	}
	return nil
}
