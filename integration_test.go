package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"goldrates/internal/aggregator"
	"goldrates/internal/config"
	"goldrates/internal/fetcher"
	"goldrates/internal/pricing"
	"goldrates/internal/provider"
	"goldrates/internal/resolver"
	"goldrates/internal/server"
)

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	down := jsonServer(t, http.StatusServiceUnavailable, `{}`)
	return &config.Config{
		FetchTimeout:            2 * time.Second,
		FetchRetries:            0,
		BackoffBase:             10 * time.Millisecond,
		BaseCurrency:            "USD",
		TargetCurrency:          "KWD",
		ValidMinRate:            0.25,
		ValidMaxRate:            0.40,
		FallbackRate:            0.308,
		FallbackGoldUSD:         2400.0,
		MetalsLiveBaseURL:       down.URL,
		GoldAPIBaseURL:          down.URL,
		SwissquoteBaseURL:       down.URL,
		FrankfurterBaseURL:      down.URL,
		ERAPIBaseURL:            down.URL,
		ExchangerateHostBaseURL: down.URL,
	}
}

func buildAggregator(cfg *config.Config) *aggregator.Aggregator {
	client := fetcher.New(cfg.FetchTimeout, cfg.FetchRetries, cfg.BackoffBase)
	gold := resolver.New("gold", provider.GoldSpecs(cfg), resolver.Positive(),
		cfg.FallbackGoldUSD, "USD/oz", client)
	rate := resolver.New("rate", provider.ForexSpecs(cfg), resolver.InRange(cfg.ValidMinRate, cfg.ValidMaxRate),
		cfg.FallbackRate, cfg.TargetCurrency, client)
	return aggregator.New(gold, rate)
}

// TestIntegration_HappyPath exercises the full flow with the primary
// provider of each chain healthy.
func TestIntegration_HappyPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetalsLiveBaseURL = jsonServer(t, http.StatusOK, `[{"gold": 2370.0}]`).URL
	cfg.FrankfurterBaseURL = jsonServer(t, http.StatusOK, `{"base": "USD", "rates": {"KWD": 0.308}}`).URL

	result := buildAggregator(cfg).Resolve(context.Background())

	want := pricing.Table{K24: 23.469, K22: 21.513, K21: 20.535, K18: 17.602}
	if result.Prices != want {
		t.Errorf("prices = %+v, want %+v", result.Prices, want)
	}
	if result.Source != "metals.live × frankfurter.app" {
		t.Errorf("source = %q, want %q", result.Source, "metals.live × frankfurter.app")
	}
}

// TestIntegration_SecondaryProviders verifies the ordered walk reaches
// later providers when earlier ones are down or implausible.
func TestIntegration_SecondaryProviders(t *testing.T) {
	cfg := testConfig(t)
	// metals.live down; gold-api.com healthy
	cfg.GoldAPIBaseURL = jsonServer(t, http.StatusOK, `{"name": "Gold", "price": 2365.2}`).URL
	// frankfurter returns an implausible rate (wrong pair); er-api healthy
	cfg.FrankfurterBaseURL = jsonServer(t, http.StatusOK, `{"rates": {"KWD": 0.92}}`).URL
	cfg.ERAPIBaseURL = jsonServer(t, http.StatusOK, `{"result": "success", "rates": {"KWD": 0.307}}`).URL

	result := buildAggregator(cfg).Resolve(context.Background())

	want := pricing.Compute(2365.2, 0.307)
	if result.Prices != want {
		t.Errorf("prices = %+v, want %+v", result.Prices, want)
	}
	if result.Source != "gold-api.com × open.er-api.com" {
		t.Errorf("source = %q, want %q", result.Source, "gold-api.com × open.er-api.com")
	}
}

// TestIntegration_GoldFallback verifies that a fully dead commodity
// chain is absorbed into the safe default while the real rate is kept.
func TestIntegration_GoldFallback(t *testing.T) {
	cfg := testConfig(t)
	cfg.ERAPIBaseURL = jsonServer(t, http.StatusOK, `{"result": "success", "rates": {"KWD": 0.307}}`).URL

	result := buildAggregator(cfg).Resolve(context.Background())

	want := pricing.Compute(cfg.FallbackGoldUSD, 0.307)
	if result.Prices != want {
		t.Errorf("prices = %+v, want %+v", result.Prices, want)
	}
	if !strings.Contains(result.Source, "fallback") {
		t.Errorf("source = %q, want it to name the fallback", result.Source)
	}
	if !strings.Contains(result.Source, "open.er-api.com") {
		t.Errorf("source = %q, want it to name the real rate provider", result.Source)
	}
}

// TestIntegration_EverythingDown verifies the system still answers
// when every provider of both chains fails.
func TestIntegration_EverythingDown(t *testing.T) {
	cfg := testConfig(t)

	result := buildAggregator(cfg).Resolve(context.Background())

	want := pricing.Compute(cfg.FallbackGoldUSD, cfg.FallbackRate)
	if result.Prices != want {
		t.Errorf("prices = %+v, want %+v", result.Prices, want)
	}
}

// TestIntegration_HTTPEndpoint exercises the inbound surface end to
// end: fallback is served as a normal 200, never an error.
func TestIntegration_HTTPEndpoint(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetalsLiveBaseURL = jsonServer(t, http.StatusOK, `[{"gold": 2370.0}]`).URL
	cfg.FrankfurterBaseURL = jsonServer(t, http.StatusOK, `{"rates": {"KWD": 0.308}}`).URL

	srv := httptest.NewServer(server.New(buildAggregator(cfg), 5*time.Second).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/gold")
	if err != nil {
		t.Fatalf("GET /api/gold failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Prices  pricing.Table `json:"prices"`
		Updated string        `json:"updated"`
		Source  string        `json:"source"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body.Prices.K24 != 23.469 {
		t.Errorf("k24 = %v, want 23.469", body.Prices.K24)
	}
	if _, err := time.Parse(time.RFC3339, body.Updated); err != nil {
		t.Errorf("updated = %q is not RFC3339: %v", body.Updated, err)
	}
	if body.Source != "metals.live × frankfurter.app" {
		t.Errorf("source = %q", body.Source)
	}
}
