// Package pricing is the pure arithmetic step: troy-ounce to gram
// conversion, karat ratios, display rounding, and provenance naming.
package pricing

import "math"

// OunceToGram is grams per troy ounce.
const OunceToGram = 31.1034768

// Table holds per-gram prices for the quoted purity grades, all in the
// target currency. K24 >= K22 >= K21 >= K18 >= 0 for any non-negative
// input.
type Table struct {
	K24 float64 `json:"k24"`
	K22 float64 `json:"k22"`
	K21 float64 `json:"k21"`
	K18 float64 `json:"k18"`
}

// Compute derives the karat table from a USD-per-troy-ounce gold price
// and a USD-to-target conversion rate. Entries are rounded to 3
// fractional digits; this is display-grade precision, not
// financial-grade.
func Compute(goldUSDPerOunce, rate float64) Table {
	perGram := goldUSDPerOunce / OunceToGram * rate
	return Table{
		K24: round3(perGram),
		K22: round3(perGram * 22 / 24),
		K21: round3(perGram * 21 / 24),
		K18: round3(perGram * 18 / 24),
	}
}

// round3 rounds half away from zero to three fractional digits.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Provenance joins the names of the two sources behind a result,
// e.g. "metals.live × frankfurter.app".
func Provenance(goldSource, rateSource string) string {
	return goldSource + " × " + rateSource
}
