package ratelimit

import (
	"context"
	"os"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter manages per-provider rate limits. Every inbound request fans
// out into fresh upstream calls, so a traffic burst would otherwise be
// forwarded verbatim to the providers.
type Limiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
}

var (
	instance *Limiter
	once     sync.Once
)

// Shared returns the singleton rate limiter instance
func Shared() *Limiter {
	once.Do(func() {
		instance = &Limiter{
			limiters: make(map[string]*rate.Limiter),
		}
		instance.initLimiters()
	})
	return instance
}

// initLimiters initializes rate limiters per provider with conservative defaults
func (l *Limiter) initLimiters() {
	providers := []string{
		"metals.live",
		"gold-api.com",
		"swissquote",
		"frankfurter.app",
		"open.er-api.com",
		"exchangerate.host",
	}

	// In test mode, use unlimited rate limits to avoid slowing down tests
	if os.Getenv("GO_TESTING") == "1" || isTestMode() {
		for _, p := range providers {
			l.limiters[p] = rate.NewLimiter(rate.Inf, 1)
		}
		return
	}

	// Conservative production limits; the free tiers of these feeds
	// tolerate a couple of requests per second at most.
	for _, p := range providers {
		l.limiters[p] = rate.NewLimiter(rate.Limit(2), 2)
	}
}

// isTestMode checks if we're running in test mode
func isTestMode() bool {
	for _, arg := range os.Args {
		if len(arg) > 6 && arg[:6] == "-test." {
			return true
		}
	}
	return false
}

// Wait blocks until the rate limiter permits a request to the given
// provider. It returns an error if the context is canceled before the
// request can proceed.
func (l *Limiter) Wait(ctx context.Context, provider string) error {
	l.mu.RLock()
	limiter, exists := l.limiters[provider]
	l.mu.RUnlock()

	if !exists {
		// Unknown providers are not limited
		return nil
	}

	return limiter.Wait(ctx)
}

// Allow reports whether a request to the given provider may happen now
func (l *Limiter) Allow(provider string) bool {
	l.mu.RLock()
	limiter, exists := l.limiters[provider]
	l.mu.RUnlock()

	if !exists {
		return true
	}

	return limiter.Allow()
}
