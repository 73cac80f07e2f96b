package provider

import (
	"encoding/json"
	"errors"
	"fmt"

	"goldrates/internal/config"
)

// Provider names for the spot gold chain.
const (
	NameMetalsLive = "metals.live"
	NameGoldAPI    = "gold-api.com"
	NameSwissquote = "swissquote"
)

// GoldSpecs returns the ordered provider table for the USD-per-troy-
// ounce spot price of gold. Order is priority: the first provider that
// yields a valid candidate wins.
func GoldSpecs(cfg *config.Config) []Spec {
	return []Spec{
		{
			Name:    NameMetalsLive,
			URL:     cfg.MetalsLiveBaseURL + "/spot",
			Extract: extractMetalsLive,
		},
		{
			Name:    NameGoldAPI,
			URL:     cfg.GoldAPIBaseURL + "/price/XAU",
			Extract: extractGoldAPI,
		},
		{
			Name:    NameSwissquote,
			URL:     cfg.SwissquoteBaseURL + "/public-quotes/bboquotes/instrument/XAU/USD",
			Extract: extractSwissquote,
		},
	}
}

// metals.live /v1/spot responds with an array of objects keyed by
// metal name: [{"gold": 2370.0}, {"silver": ...}, ...].
type metalsLiveSpot struct {
	Gold float64 `json:"gold"`
}

func extractMetalsLive(body []byte) (float64, error) {
	var spots []metalsLiveSpot
	if err := json.Unmarshal(body, &spots); err != nil {
		return 0, fmt.Errorf("failed to parse spot response: %w", err)
	}
	if len(spots) == 0 {
		return 0, errors.New("spot response contains no entries")
	}
	return spots[0].Gold, nil
}

// gold-api.com /price/XAU responds with a flat object:
// {"name": "Gold", "price": 2370.0, "updatedAt": "..."}.
type goldAPIPrice struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func extractGoldAPI(body []byte) (float64, error) {
	var quote goldAPIPrice
	if err := json.Unmarshal(body, &quote); err != nil {
		return 0, fmt.Errorf("failed to parse price response: %w", err)
	}
	if quote.Price == 0 {
		return 0, errors.New("price not found in response")
	}
	return quote.Price, nil
}

// The swissquote public quote feed responds with an array of
// instruments, each carrying nested spread profiles:
// [{"spreadProfilePrices": [{"bid": 2369.5, "ask": 2370.5}, ...]}, ...].
type swissquoteInstrument struct {
	SpreadProfilePrices []struct {
		Bid float64 `json:"bid"`
		Ask float64 `json:"ask"`
	} `json:"spreadProfilePrices"`
}

func extractSwissquote(body []byte) (float64, error) {
	var instruments []swissquoteInstrument
	if err := json.Unmarshal(body, &instruments); err != nil {
		return 0, fmt.Errorf("failed to parse instrument response: %w", err)
	}
	if len(instruments) == 0 || len(instruments[0].SpreadProfilePrices) == 0 {
		return 0, errors.New("no spread profile prices in response")
	}
	return instruments[0].SpreadProfilePrices[0].Bid, nil
}
