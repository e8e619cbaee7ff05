package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64 // Sustained request rate per client
	Burst             int     // Maximum burst per client
}

// clientLimiters tracks one token bucket per client, evicting buckets that
// have been idle long enough to refill completely.
type clientLimiters struct {
	mu      sync.Mutex
	config  RateLimitConfig
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiters(config RateLimitConfig) *clientLimiters {
	return &clientLimiters{
		config:  config,
		clients: make(map[string]*clientLimiter),
	}
}

func (cl *clientLimiters) get(clientID string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := time.Now()
	idle := time.Hour
	if cl.config.RequestsPerSecond > 0 {
		idle = time.Duration(float64(cl.config.Burst)/cl.config.RequestsPerSecond*float64(time.Second)) + time.Minute
	}
	for id, c := range cl.clients {
		if now.Sub(c.lastSeen) > idle {
			delete(cl.clients, id)
		}
	}

	c, ok := cl.clients[clientID]
	if !ok {
		c = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(cl.config.RequestsPerSecond), cl.config.Burst),
		}
		cl.clients[clientID] = c
	}
	c.lastSeen = now
	return c.limiter
}

// RateLimitMiddleware implements per-client rate limiting with an in-process
// token bucket per client address.
func RateLimitMiddleware(config RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	limiters := newClientLimiters(config)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Client identifier: the remote address without the port, so one
			// client's connections share a bucket.
			clientID := r.RemoteAddr
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				clientID = host
			}

			limiter := limiters.get(clientID)

			if !limiter.Allow() {
				retryAfter := 1
				if config.RequestsPerSecond > 0 {
					retryAfter = int(math.Ceil(1 / config.RequestsPerSecond))
				}

				logger.Warn("Rate limit exceeded",
					zap.String("client_id", clientID),
					zap.Float64("rate", config.RequestsPerSecond),
					zap.Int("burst", config.Burst),
				)

				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Burst))
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Duration(retryAfter)*time.Second).Unix(), 10))
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				RespondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			// Add rate limit headers
			remaining := int(limiter.Tokens())
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			next.ServeHTTP(w, r)
		})
	}
}
