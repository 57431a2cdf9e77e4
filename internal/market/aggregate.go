package market

import (
	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/money"
	"github.com/shopspring/decimal"
)

// markup is the fixed 5% margin applied over the market average.
var markup = decimal.NewFromFloat(1.05)

// Aggregate parses every listing price, computes the arithmetic mean of the
// ones that parsed, and suggests mean x 1.05. Unparsable listings are
// filtered out; if none survive the whole aggregation fails rather than
// producing a zero or NaN estimate.
func Aggregate(listings []Listing) (*Summary, error) {
	summary := &Summary{}
	sum := decimal.Zero

	for _, listing := range listings {
		parsed, err := money.ParsePrice(listing.Price)
		if err != nil {
			summary.Skipped++
			continue
		}
		summary.Listings = append(summary.Listings, ParsedListing{Listing: listing, Parsed: parsed})
		sum = sum.Add(parsed)
	}

	if len(summary.Listings) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoListings, "no competitor listings parsed successfully").
			WithDetails(map[string]any{"received": len(listings), "skipped": summary.Skipped})
	}

	count := decimal.NewFromInt(int64(len(summary.Listings)))
	summary.Mean = sum.Div(count).Round(2)
	summary.Suggested = summary.Mean.Mul(markup).Round(2)
	return summary, nil
}

// EstimateSales projects yearly sales from the gap between the current price
// and the market average: a simple linear model, floored at zero.
func EstimateSales(currentPrice, avgCompetitorPrice float64) float64 {
	estimate := 1000 - (currentPrice-avgCompetitorPrice)*100
	if estimate < 0 {
		return 0
	}
	return estimate
}
