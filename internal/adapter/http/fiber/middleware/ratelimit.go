package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/aniket045123/craftmyresume/pkg/config"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements per-IP token buckets.
type RateLimiter struct {
	visitors map[string]*visitor
	mu        sync.Mutex
	r         rate.Limit
	b         int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		r:        rate.Limit(requestsPerSecond),
		b:        burst,
		ttl:      10 * time.Minute,
		now:      time.Now,
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.r, rl.b)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	// Idle visitors are forgotten at most once per ttl.
	if now.Sub(rl.lastSweep) >= rl.ttl {
		rl.sweep(now)
	}

	return v.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) sweep(now time.Time) {
	for k, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, k)
		}
	}
	rl.lastSweep = now
}

// Handler rejects with 429 once an IP exhausts its bucket.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		}
		return c.Next()
	}
}

// RateLimit builds the limiter from config; when disabled it is a pass-through.
func RateLimit(cfg config.RateLimitingConfig) fiber.Handler {
	if !cfg.Enabled || cfg.RequestsPerSecond <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst).Handler()
}
