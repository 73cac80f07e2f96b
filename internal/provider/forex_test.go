package provider

import (
	"strings"
	"testing"
)

func TestForexSpecs_Order(t *testing.T) {
	specs := ForexSpecs(testConfig())

	want := []string{NameFrankfurter, NameERAPI, NameExchangerateHost}
	if len(specs) != len(want) {
		t.Fatalf("ForexSpecs() returned %d specs, want %d", len(specs), len(want))
	}
	for i, name := range want {
		if specs[i].Name != name {
			t.Errorf("ForexSpecs()[%d].Name = %q, want %q", i, specs[i].Name, name)
		}
	}
}

func TestForexSpecs_URLsCarryCurrencyPair(t *testing.T) {
	cfg := testConfig()
	cfg.BaseCurrency = "USD"
	cfg.TargetCurrency = "AED"

	specs := ForexSpecs(cfg)

	wantURLs := []string{
		"http://frankfurter.test/latest?from=USD&to=AED",
		"http://erapi.test/v6/latest/USD",
		"http://exchangeratehost.test/latest?base=USD&symbols=AED",
	}
	for i, want := range wantURLs {
		if specs[i].URL != want {
			t.Errorf("ForexSpecs()[%d].URL = %q, want %q", i, specs[i].URL, want)
		}
	}
}

func TestExtractRateTable(t *testing.T) {
	extract := extractRateTable("KWD")

	tests := []struct {
		name    string
		body    string
		want    float64
		wantErr bool
	}{
		{"valid rates", `{"base": "USD", "rates": {"KWD": 0.308}}`, 0.308, false},
		{"wrong currency", `{"rates": {"EUR": 0.92}}`, 0, true},
		{"empty rates", `{"rates": {}}`, 0, true},
		{"not json", `service unavailable`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extract([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractRateTable() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("extractRateTable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractERAPI(t *testing.T) {
	extract := extractERAPI("KWD")

	tests := []struct {
		name    string
		body    string
		want    float64
		wantErr bool
	}{
		{"valid response", `{"result": "success", "rates": {"KWD": 0.307, "EUR": 0.92}}`, 0.307, false},
		{"error result", `{"result": "error", "error-type": "invalid-key"}`, 0, true},
		{"missing target", `{"result": "success", "rates": {"EUR": 0.92}}`, 0, true},
		{"not json", `{`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extract([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractERAPI() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("extractERAPI() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractERAPI_ErrorNamesResult(t *testing.T) {
	extract := extractERAPI("KWD")

	_, err := extract([]byte(`{"result": "error"}`))
	if err == nil {
		t.Fatal("extractERAPI() expected error for error result, got nil")
	}
	if !strings.Contains(err.Error(), "error") {
		t.Errorf("extractERAPI() error = %q, want it to name the reported result", err.Error())
	}
}
