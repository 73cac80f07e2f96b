// Package resolver implements the ordered fallback walk over a
// provider table: first plausible success wins, every failure is
// recorded as data, and exhaustion is absorbed into a safe-default
// outcome so resolution never fails outright.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"goldrates/internal/metrics"
	"goldrates/internal/provider"
	"goldrates/internal/ratelimit"
)

// Quote is a successfully resolved value. Immutable once constructed.
type Quote struct {
	// Value is finite; for exchange rates it is strictly positive.
	Value float64

	// Unit labels the value, e.g. "USD/oz" or a currency code.
	Unit string

	// Provider names the source that supplied the value, or
	// FallbackName when the safe default was used.
	Provider string
}

// FallbackName is the provider name reported for safe-default quotes.
const FallbackName = "fallback"

// Attempt records one failed provider during a walk.
type Attempt struct {
	Provider string
	Reason   string
}

// Outcome is the result of one resolution: either a real quote, or the
// safe default with Fallback set and a reason trail covering every
// attempted provider.
type Outcome struct {
	Quote    Quote
	Fallback bool
	Trail    []Attempt
}

// Client is the transport used to fetch provider bodies.
type Client interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Resolver walks a static, ordered provider table.
type Resolver struct {
	name      string
	providers []provider.Spec
	policy    Policy
	fallback  float64
	unit      string
	client    Client
	limiter   *ratelimit.Limiter
	log       *slog.Logger
}

// New creates a Resolver. name identifies it in logs and metrics;
// fallback is the safe default returned when every provider fails.
func New(name string, providers []provider.Spec, policy Policy, fallback float64, unit string, client Client) *Resolver {
	return &Resolver{
		name:      name,
		providers: providers,
		policy:    policy,
		fallback:  fallback,
		unit:      unit,
		client:    client,
		limiter:   ratelimit.Shared(),
		log:       slog.Default().With("resolver", name),
	}
}

// Resolve walks the provider table in priority order and returns the
// first candidate that parses and validates. Providers after the first
// success are never contacted. If every provider fails, the configured
// safe default is returned with Fallback set; Resolve never errors.
func (r *Resolver) Resolve(ctx context.Context) Outcome {
	timer := time.Now()
	defer func() {
		metrics.ResolveDurationSeconds.WithLabelValues(r.name).Observe(time.Since(timer).Seconds())
	}()

	trail := make([]Attempt, 0, len(r.providers))

	for _, p := range r.providers {
		if err := r.limiter.Wait(ctx, p.Name); err != nil {
			trail = r.fail(trail, p.Name, metrics.ResultThrottle, fmt.Sprintf("rate limit wait: %v", err))
			continue
		}

		body, err := r.client.Get(ctx, p.URL)
		if err != nil {
			trail = r.fail(trail, p.Name, metrics.ResultFetch, fmt.Sprintf("fetch: %v", err))
			continue
		}

		value, err := p.Extract(body)
		if err != nil {
			trail = r.fail(trail, p.Name, metrics.ResultParse, fmt.Sprintf("extract: %v", err))
			continue
		}

		if err := r.policy(value); err != nil {
			trail = r.fail(trail, p.Name, metrics.ResultInvalid, fmt.Sprintf("invalid %g: %v", value, err))
			continue
		}

		metrics.ProviderAttemptsTotal.WithLabelValues(r.name, p.Name, metrics.ResultOK).Inc()
		return Outcome{
			Quote: Quote{Value: value, Unit: r.unit, Provider: p.Name},
		}
	}

	metrics.FallbackTotal.WithLabelValues(r.name).Inc()
	r.log.Warn("all providers exhausted, using safe default",
		"fallback", r.fallback,
		"attempted", len(trail))

	return Outcome{
		Quote:    Quote{Value: r.fallback, Unit: r.unit, Provider: FallbackName},
		Fallback: true,
		Trail:    trail,
	}
}

// fail records one provider failure in the trail, metrics, and log.
func (r *Resolver) fail(trail []Attempt, providerName, result, reason string) []Attempt {
	metrics.ProviderAttemptsTotal.WithLabelValues(r.name, providerName, result).Inc()
	r.log.Debug("provider disqualified", "provider", providerName, "reason", reason)
	return append(trail, Attempt{Provider: providerName, Reason: reason})
}
