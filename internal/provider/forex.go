package provider

import (
	"encoding/json"
	"fmt"

	"goldrates/internal/config"
)

// Provider names for the currency conversion chain.
const (
	NameFrankfurter      = "frankfurter.app"
	NameERAPI            = "open.er-api.com"
	NameExchangerateHost = "exchangerate.host"
)

// ForexSpecs returns the ordered provider table for the base->target
// conversion rate. Order matches operator trust; the first provider
// that yields a valid in-band candidate wins.
func ForexSpecs(cfg *config.Config) []Spec {
	base, target := cfg.BaseCurrency, cfg.TargetCurrency
	return []Spec{
		{
			Name:    NameFrankfurter,
			URL:     fmt.Sprintf("%s/latest?from=%s&to=%s", cfg.FrankfurterBaseURL, base, target),
			Extract: extractRateTable(target),
		},
		{
			Name:    NameERAPI,
			URL:     fmt.Sprintf("%s/v6/latest/%s", cfg.ERAPIBaseURL, base),
			Extract: extractERAPI(target),
		},
		{
			Name:    NameExchangerateHost,
			URL:     fmt.Sprintf("%s/latest?base=%s&symbols=%s", cfg.ExchangerateHostBaseURL, base, target),
			Extract: extractRateTable(target),
		},
	}
}

// rateTableResponse covers the common {"rates": {"KWD": 0.308}} shape
// shared by frankfurter.app and exchangerate.host.
type rateTableResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func extractRateTable(target string) Extractor {
	return func(body []byte) (float64, error) {
		var resp rateTableResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return 0, fmt.Errorf("failed to parse rates response: %w", err)
		}
		rate, ok := resp.Rates[target]
		if !ok {
			return 0, fmt.Errorf("rate for %s not found in response", target)
		}
		return rate, nil
	}
}

// open.er-api.com wraps the same rate table in an envelope with an
// explicit result marker: {"result": "success", "rates": {...}}.
type erAPIResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func extractERAPI(target string) Extractor {
	return func(body []byte) (float64, error) {
		var resp erAPIResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return 0, fmt.Errorf("failed to parse rates response: %w", err)
		}
		if resp.Result != "success" {
			return 0, fmt.Errorf("provider reported result %q", resp.Result)
		}
		rate, ok := resp.Rates[target]
		if !ok {
			return 0, fmt.Errorf("rate for %s not found in response", target)
		}
		return rate, nil
	}
}
