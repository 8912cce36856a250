package api

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/limbo/moodtrack/pkg/httputil"
	"golang.org/x/time/rate"
)

const limiterStaleAfter = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key. A nil *RateLimiter is
// valid and lets every request through.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	prefix  string
	limit   rate.Limit
	burst   int
}

func NewRateLimiter(prefix string, rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		entries: make(map[string]*limiterEntry),
		prefix:  prefix,
		limit:   rate.Limit(rps),
		burst:   burst,
	}
}

func (rl *RateLimiter) getOrCreate(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if e, ok := rl.entries[key]; ok {
		e.lastSeen = now
		return e.limiter
	}
	lim := rate.NewLimiter(rl.limit, rl.burst)
	rl.entries[key] = &limiterEntry{limiter: lim, lastSeen: now}
	return lim
}

// Cleanup forgets clients not seen since now minus the stale period.
func (rl *RateLimiter) Cleanup(now time.Time) {
	if rl == nil {
		return
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := now.Add(-limiterStaleAfter)
	for k, e := range rl.entries {
		if e.lastSeen.Before(cutoff) {
			delete(rl.entries, k)
		}
	}
}

func (rl *RateLimiter) Len() int {
	if rl == nil {
		return 0
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.entries)
}

func (rl *RateLimiter) RunJanitor(ctx context.Context, every time.Duration) {
	if rl == nil {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.Cleanup(now)
		}
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.prefix + ":ip:" + clientIP(r)
		if uid, err := GetUIDFromContext(r); err == nil {
			key = rl.prefix + ":uid:" + uid.String()
		}
		if !rl.getOrCreate(key, time.Now()).Allow() {
			GetLoggerFromCtx(r.Context()).Warn("rate limit exceeded")
			w.Header().Set("Retry-After", "1")
			httputil.WriteErrorResponse(w, http.StatusTooManyRequests, "too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
