// Package ratelimit provides per-client token bucket rate limiting.
package ratelimit

import (
	"sync"
	"time"

	"github.com/jonathan/career-recommender/internal/config"
	"golang.org/x/time/rate"
)

// idleTTL is how long an unused bucket is kept before cleanup drops it.
const idleTTL = time.Hour

// Tier is a refill rate per minute with a burst capacity.
type Tier struct {
	Name      string
	PerMinute int
	Burst     int
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Auth            Tier
	Upload          Tier
	Default         Tier
	CleanupInterval time.Duration
}

// FromSettings converts the application rate limit section.
func FromSettings(s config.RateLimitConfig) *Config {
	return &Config{
		Enabled:         s.Enabled,
		Auth:            Tier{Name: "auth", PerMinute: s.Auth.PerMinute, Burst: s.Auth.Burst},
		Upload:          Tier{Name: "upload", PerMinute: s.Upload.PerMinute, Burst: s.Upload.Burst},
		Default:         Tier{Name: "default", PerMinute: s.Default.PerMinute, Burst: s.Default.Burst},
		CleanupInterval: 5 * time.Minute,
	}
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	limiter    *rate.Limiter
	tier       Tier
	lastAccess time.Time
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = FromSettings(config.RateLimitConfig{
			Enabled: true,
			Auth:    config.RateLimitTier{PerMinute: 10, Burst: 5},
			Upload:  config.RateLimitTier{PerMinute: 6, Burst: 2},
			Default: config.RateLimitTier{PerMinute: 120, Burst: 30},
		})
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  cfg,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go l.cleanup(cfg.CleanupInterval)
	}
	return l
}

// Allow consumes a token for clientID on the endpoint class of path and method.
func (l *Limiter) Allow(clientID, path, method string) Info {
	if !l.config.Enabled {
		return Info{Allowed: true}
	}
	tier, limited := l.tierFor(path, method)
	if !limited {
		return Info{Allowed: true}
	}

	now := l.now()
	b := l.bucket(clientID+":"+tier.Name, tier, now)

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	remaining := int(tokens)
	if remaining < 0 {
		remaining = 0
	}

	perSecond := float64(tier.PerMinute) / 60
	info := Info{
		Allowed:   allowed,
		Limit:     tier.Burst,
		Remaining: remaining,
		ResetTime: now.Add(secondsToDuration((float64(tier.Burst) - tokens) / perSecond)),
	}
	if !allowed {
		info.RetryAfter = secondsToDuration((1 - tokens) / perSecond)
	}
	return info
}

// tierFor classifies a request. Health and metrics are never limited.
func (l *Limiter) tierFor(path, method string) (Tier, bool) {
	switch {
	case path == "/api/health" || path == "/metrics":
		return Tier{}, false
	case method == "POST" && (path == "/api/auth/login" || path == "/api/auth/register"):
		return l.config.Auth, true
	case method == "POST" && path == "/api/resume/upload":
		return l.config.Upload, true
	default:
		return l.config.Default, true
	}
}

func (l *Limiter) bucket(key string, tier Tier, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{
			limiter: rate.NewLimiter(rate.Limit(float64(tier.PerMinute)/60), tier.Burst),
			tier:    tier,
		}
		l.buckets[key] = b
	}
	b.lastAccess = now
	return b
}

func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanupBuckets()
		case <-l.stop:
			return
		}
	}
}

// cleanupBuckets removes buckets that have not been used within idleTTL.
func (l *Limiter) cleanupBuckets() {
	cutoff := l.now().Add(-idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func secondsToDuration(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
