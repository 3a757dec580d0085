package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// UploadLimiter throttles uploads per client address. Extraction with OCR is
// expensive, so a burst of uploads from one client is bounded.
type UploadLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewUploadLimiter allows perMinute uploads per client with the given burst.
func NewUploadLimiter(perMinute float64, burst int) *UploadLimiter {
	return &UploadLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(perMinute / 60),
		burst:    burst,
		idleTTL:  time.Hour,
		now:      time.Now,
	}
}

func (l *UploadLimiter) limiterFor(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.limiters[client]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[client] = entry
	}
	entry.lastSeen = now

	return entry.limiter
}

// Prune drops limiters idle for longer than an hour.
func (l *UploadLimiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idleTTL)
	for client, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, client)
		}
	}
}

// Limit rejects requests over the client's budget with 429.
func (l *UploadLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiterFor(clientAddr(r)).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate_limited"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddr is the host part of RemoteAddr; chi's RealIP middleware has
// already applied forwarding headers.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
