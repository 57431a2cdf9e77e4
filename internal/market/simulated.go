package market

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	simulatedSellerCount = 5
	simulatedPriceMin    = 20.0
	simulatedPriceMax    = 200.0
	simulatedSalesMin    = 100
	simulatedSalesMax    = 1000
)

// SimulatedSource fabricates competitor listings for environments without an
// upstream API key. Listings carry the same shape as live ones so the rest of
// the pipeline cannot tell the difference; the response basis label can.
type SimulatedSource struct {
	uniform func() float64
}

// NewSimulatedSource builds the source. A nil draw function uses the global
// rand; tests inject a deterministic one.
func NewSimulatedSource(uniform func() float64) *SimulatedSource {
	if uniform == nil {
		uniform = rand.Float64
	}
	return &SimulatedSource{uniform: uniform}
}

// Fetch returns five fabricated sellers with prices in [20, 200].
func (s *SimulatedSource) Fetch(_ context.Context, product string) ([]Listing, error) {
	listings := make([]Listing, 0, simulatedSellerCount)
	for i := 0; i < simulatedSellerCount; i++ {
		price := roundCents(simulatedPriceMin + s.uniform()*(simulatedPriceMax-simulatedPriceMin))
		sales := simulatedSalesMin + int(s.uniform()*float64(simulatedSalesMax-simulatedSalesMin))
		listings = append(listings, Listing{
			Title:        product,
			Source:       fmt.Sprintf("Seller %d", i+1),
			Price:        fmt.Sprintf("$%.2f", price),
			SalesPerYear: sales,
		})
	}
	return listings, nil
}

// SimulatedMarket synthesizes a single market price, the batch path's
// stand-in for the aggregator mean when no live competitor data exists.
type SimulatedMarket struct {
	uniform func() float64
}

func NewSimulatedMarket(uniform func() float64) *SimulatedMarket {
	if uniform == nil {
		uniform = rand.Float64
	}
	return &SimulatedMarket{uniform: uniform}
}

// MarketPrice draws a synthetic market price in [20, 200], rounded to cents.
func (s *SimulatedMarket) MarketPrice(_ string) float64 {
	return roundCents(simulatedPriceMin + s.uniform()*(simulatedPriceMax-simulatedPriceMin))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
