// internal/middleware/rate_limit.go
package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/perfume-store/internal/config"
	"github.com/javajoker/perfume-store/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
	ttl      time.Duration
}

func NewRateLimiter(r rate.Limit, b int, ttl time.Duration) *RateLimiter {
	if ttl <= 0 {
		ttl = 3 * time.Minute
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
		ttl:      ttl,
	}
}

// Cleanup drops idle visitors every minute until ctx is done.
func (rl *RateLimiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep(time.Now())
		}
	}
}

func (rl *RateLimiter) sweep(now time.Time) {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.getVisitor(c.ClientIP()).Allow() {
			utils.TooManyRequestsResponse(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimits bundles the per-route-class limiters built from config.
type RateLimits struct {
	enabled bool
	general *RateLimiter
	auth    *RateLimiter
	upload  *RateLimiter
}

func NewRateLimits(cfg config.RateLimitConfig) *RateLimits {
	ttl := time.Duration(cfg.VisitorTTLMins) * time.Minute
	return &RateLimits{
		enabled: cfg.Enabled,
		general: NewRateLimiter(rate.Limit(cfg.GeneralPerSec), cfg.GeneralBurst, ttl),
		auth:    NewRateLimiter(rate.Limit(cfg.AuthPerMinute/60), cfg.AuthBurst, ttl),
		upload:  NewRateLimiter(rate.Limit(cfg.UploadPerMin/60), cfg.UploadBurst, ttl),
	}
}

// Start runs visitor cleanup for every limiter until ctx is done.
func (r *RateLimits) Start(ctx context.Context) {
	if !r.enabled {
		return
	}
	go r.general.Cleanup(ctx)
	go r.auth.Cleanup(ctx)
	go r.upload.Cleanup(ctx)
}

func (r *RateLimits) General() gin.HandlerFunc {
	return r.wrap(r.general)
}

func (r *RateLimits) Auth() gin.HandlerFunc {
	return r.wrap(r.auth)
}

func (r *RateLimits) Upload() gin.HandlerFunc {
	return r.wrap(r.upload)
}

func (r *RateLimits) wrap(rl *RateLimiter) gin.HandlerFunc {
	if !r.enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.Middleware()
}
