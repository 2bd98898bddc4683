package service

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter keeps one token bucket per key (user id). Buckets of keys that
// have been idle for an hour are dropped on the next call.
type KeyedLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*keyedEntry
	lastGC   time.Time
}

type keyedEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedLimiter allows perMinute events per key and minute. A non-positive
// value disables limiting.
func NewKeyedLimiter(perMinute int) *KeyedLimiter {
	if perMinute <= 0 {
		return &KeyedLimiter{limit: rate.Inf, limiters: map[string]*keyedEntry{}}
	}
	return &KeyedLimiter{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		limiters: map[string]*keyedEntry{},
	}
}

func (l *KeyedLimiter) Allow(key string) bool {
	if l.limit == rate.Inf {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastGC) > time.Hour {
		for k, e := range l.limiters {
			if now.Sub(e.lastSeen) > time.Hour {
				delete(l.limiters, k)
			}
		}
		l.lastGC = now
	}

	e, ok := l.limiters[key]
	if !ok {
		e = &keyedEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}
