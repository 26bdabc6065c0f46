package mw

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Etherlyvan/movie-mate/internal/utils"
)

type window struct {
	count    int
	start    time.Time
	lastSeen time.Time
}

type limiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	sweepAt time.Time
}

func newLimiter(limit int, period time.Duration) *limiter {
	if period <= 0 {
		period = time.Minute
	}
	return &limiter{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window, 256),
		sweepAt: time.Now().Add(period),
	}
}

func (l *limiter) allow(key string, now time.Time) (ok bool, remaining int, retryAfterSec int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.sweepAt) {
		for k, w := range l.windows {
			if now.Sub(w.lastSeen) > 2*l.period {
				delete(l.windows, k)
			}
		}
		l.sweepAt = now.Add(l.period)
	}

	w := l.windows[key]
	if w == nil || now.Sub(w.start) >= l.period {
		w = &window{start: now}
		l.windows[key] = w
	}
	w.lastSeen = now

	if w.count >= l.limit {
		retry := int(l.period.Seconds() - now.Sub(w.start).Seconds())
		if retry < 1 {
			retry = 1
		}
		return false, 0, retry
	}
	w.count++
	return true, l.limit - w.count, 0
}

// RateLimit caps requests per client IP inside a fixed window. A limit of
// zero disables the middleware entirely.
func RateLimit(limit int, period time.Duration, trustProxy bool) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	l := newLimiter(limit, period)
	limitStr := strconv.Itoa(limit)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := utils.ClientIP(r, trustProxy)

			ok, remaining, retry := l.allow(key, time.Now())
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				w.Header().Set("X-RateLimit-Limit", limitStr)
				w.Header().Set("X-RateLimit-Remaining", "0")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Limit", limitStr)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			next.ServeHTTP(w, r)
		})
	}
}
