// Package market normalizes competitor listings into numeric form and
// derives market-average price estimates from them.
package market

import "github.com/shopspring/decimal"

// Listing is one competitor offer as returned by the upstream lookup. Price
// arrives as formatted text ("$1,299.00") and is parsed downstream.
type Listing struct {
	Title        string `json:"title"`
	Source       string `json:"source"`
	Price        string `json:"price"`
	SalesPerYear int    `json:"sales_per_year,omitempty"`
}

// ParsedListing pairs a listing with its cleaned numeric price.
type ParsedListing struct {
	Listing
	Parsed decimal.Decimal `json:"parsed_price"`
}

// Summary aggregates the successfully parsed listings. Listings that failed
// to parse are counted in Skipped, never coerced into the mean.
type Summary struct {
	Listings  []ParsedListing `json:"listings"`
	Skipped   int             `json:"skipped"`
	Mean      decimal.Decimal `json:"mean"`
	Suggested decimal.Decimal `json:"suggested"`
}
