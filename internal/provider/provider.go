// Package provider declares the upstream data sources as static,
// ordered tables. Each entry pairs a stable name (used for provenance
// and metrics) with the URL to fetch and a typed extractor for that
// provider's JSON shape. Adding, removing, or reordering a provider
// touches only its table entry, never resolver logic.
package provider

// Extractor parses a raw response body and returns the numeric
// candidate, or an error when the body is malformed or the expected
// field is absent. Extractors are pure: no network, no shared state.
type Extractor func(body []byte) (float64, error)

// Spec describes one upstream data source.
type Spec struct {
	// Name identifies the provider in provenance strings, reason
	// trails, logs, and metrics.
	Name string

	// URL is the fully built GET endpoint for this provider.
	URL string

	// Extract maps the provider's response shape to a raw numeric
	// candidate. Validation happens later, in the resolver.
	Extract Extractor
}
