// Package aggregator fans the two resolvers out concurrently, joins
// their outcomes, and derives the final price table.
package aggregator

import (
	"context"
	"strings"
	"sync"
	"time"

	"goldrates/internal/pricing"
	"goldrates/internal/resolver"
)

// Resolver is the contract both resolution legs satisfy.
type Resolver interface {
	Resolve(ctx context.Context) resolver.Outcome
}

// Result is the aggregate answer handed to the caller for
// serialization.
type Result struct {
	Prices  pricing.Table
	Updated time.Time
	Source  string

	// Gold and Rate keep the raw outcomes around for logging and
	// diagnostics; the HTTP layer only serializes the fields above.
	Gold resolver.Outcome
	Rate resolver.Outcome
}

// Aggregator joins the two independent resolutions.
type Aggregator struct {
	gold Resolver
	rate Resolver
}

// New creates an Aggregator over a gold resolver and a rate resolver.
func New(gold, rate Resolver) *Aggregator {
	return &Aggregator{gold: gold, rate: rate}
}

// Resolve runs both resolvers concurrently, waits for both, and
// combines their quotes into the karat price table. The two legs are
// independent: a fallback in one never blocks or corrupts the other.
func (a *Aggregator) Resolve(ctx context.Context) Result {
	type legResult struct {
		leg     string
		outcome resolver.Outcome
	}

	results := make(chan legResult, 2)

	var wg sync.WaitGroup
	for leg, res := range map[string]Resolver{"gold": a.gold, "rate": a.rate} {
		wg.Add(1)
		go func(leg string, res Resolver) {
			defer wg.Done()
			results <- legResult{leg: leg, outcome: res.Resolve(ctx)}
		}(leg, res)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var gold, rate resolver.Outcome
	for r := range results {
		switch r.leg {
		case "gold":
			gold = r.outcome
		case "rate":
			rate = r.outcome
		}
	}

	return Result{
		Prices:  pricing.Compute(gold.Quote.Value, rate.Quote.Value),
		Updated: time.Now().UTC(),
		Source:  pricing.Provenance(sourceName(gold), sourceName(rate)),
		Gold:    gold,
		Rate:    rate,
	}
}

// sourceName renders the provenance label for one outcome. Fallback
// outcomes carry their reason trail so "why did we fall back" is
// answerable from the response alone.
func sourceName(o resolver.Outcome) string {
	if !o.Fallback {
		return o.Quote.Provider
	}
	reasons := make([]string, 0, len(o.Trail))
	for _, a := range o.Trail {
		reasons = append(reasons, a.Provider+": "+a.Reason)
	}
	if len(reasons) == 0 {
		return resolver.FallbackName
	}
	return resolver.FallbackName + " (" + strings.Join(reasons, " | ") + ")"
}
