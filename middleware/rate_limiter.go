package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"carebook/config"
	"carebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// visitor tracks one client's limiter and when it last made a request, so
// idle entries can be evicted instead of growing the map forever.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	perMin   int
	burst    int
}

func newVisitorStore(perMin, burst int) *visitorStore {
	return &visitorStore{
		visitors: make(map[string]*visitor),
		perMin:   perMin,
		burst:    burst,
	}
}

func (s *visitorStore) limiterFor(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (s *visitorStore) evictIdle(olderThan time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	for ip, v := range s.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(s.visitors, ip)
		}
	}
}

// RateLimitMiddleware throttles clients per IP. Booking traffic is bursty
// (a seeker fires match, reserve and command calls in quick succession), so
// the burst capacity sits well above the sustained per-minute rate.
func RateLimitMiddleware() gin.HandlerFunc {
	perMin := config.AppConfig.RateLimitPerMinute
	if perMin <= 0 {
		perMin = 120
	}
	burst := config.AppConfig.RateLimitBurst
	if burst <= 0 {
		burst = 30
	}
	store := newVisitorStore(perMin, burst)
	go func() {
		for range time.Tick(5 * time.Minute) {
			store.evictIdle(15 * time.Minute)
		}
	}()

	return func(c *gin.Context) {
		ip := clientIP(c)
		if !store.limiterFor(ip).Allow() {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip))
			utils.JSONError(c, http.StatusTooManyRequests, "rate_limited", "too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}

// clientIP resolves the originating client address: first hop of
// X-Forwarded-For, then X-Real-IP, then the socket address. Header values
// that do not parse as IPs fall through so a spoofed header cannot pick an
// arbitrary rate-limit bucket.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
