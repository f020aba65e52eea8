package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/couchcryptid/danger-zones/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"golang.org/x/time/rate"
)

// clientIdleTTL is how long a client's limiter is kept after its last request.
const clientIdleTTL = 3 * time.Minute

// rateLimiter applies a token bucket per client IP. Every snapshot request
// opens a warehouse connection, so a single client must not be able to keep
// the warehouse busy.
type rateLimiter struct {
	limit   rate.Limit
	burst   int
	metrics *observability.Metrics

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(rps float64, burst int, metrics *observability.Metrics) *rateLimiter {
	return &rateLimiter{
		limit:     rate.Limit(rps),
		burst:     burst,
		metrics:   metrics,
		clients:   make(map[string]*clientLimiter),
		lastSweep: time.Now(),
	}
}

func (l *rateLimiter) allow(client string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > clientIdleTTL {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > clientIdleTTL {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[client]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientKey(r), time.Now()) {
			l.metrics.RateLimited.Inc()
			w.Header().Set("Retry-After", strconv.Itoa(l.retryAfterSeconds()))
			sharedobs.WriteJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// retryAfterSeconds is the time until one token refills, rounded up.
func (l *rateLimiter) retryAfterSeconds() int {
	return max(1, int(math.Ceil(1/float64(l.limit))))
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
