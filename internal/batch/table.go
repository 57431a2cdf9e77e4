// Package batch applies the full pricing pipeline across an uploaded product
// table.
package batch

import "github.com/oscarvaldez-dev/pricepulse-backend/internal/pricing"

// Row is one product record. Price and Product are required; MarketPrice is
// synthesized when absent and never overwritten when present.
type Row struct {
	Product  string   `json:"product"`
	Category string   `json:"category,omitempty"`
	Stock    *float64 `json:"stock,omitempty"`
	Sales    *float64 `json:"sales,omitempty"`
	Price    *float64 `json:"price"`

	MarketPrice        *float64      `json:"market_price,omitempty"`
	SuggestedSellPrice *float64      `json:"suggested_sell_price,omitempty"`
	PriceAdvice        pricing.Label `json:"price_advice,omitempty"`
	LowConfidence      bool          `json:"low_confidence,omitempty"`
}

// Result is the enriched table with the aggregate advice breakdown.
type Result struct {
	Rows      []Row          `json:"rows"`
	Breakdown map[string]int `json:"breakdown"`
	Degraded  bool           `json:"degraded,omitempty"`
	Warnings  []string       `json:"warnings,omitempty"`
}

func floatPtr(v float64) *float64 {
	return &v
}
