package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/oscarvaldez-dev/pricepulse-backend/internal/market"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/model"
	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/logger"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/metrics"
)

// Basis labels how a suggested price was derived, so callers never confuse
// the two confidence levels.
const (
	BasisMarketAverage = "market_average"
	BasisSimulated     = "simulated"
)

// Service runs the single-product analysis flow: fetch competitors,
// aggregate, advise, and fall back to the simulated estimate when no usable
// competitor data exists.
type Service interface {
	AnalyzeProduct(ctx context.Context, input AnalyzeInput) (*Analysis, error)
	Competitors(ctx context.Context, product string) (*market.Summary, error)
}

// AnalyzeInput is the single-product request.
type AnalyzeInput struct {
	ProductName  string
	CurrentPrice float64
}

// Analysis is the single-product result. Warnings carry every failure a
// fallback path masked, so nothing is silently swallowed.
type Analysis struct {
	ProductName    string                 `json:"product_name"`
	CurrentPrice   float64                `json:"current_price"`
	SuggestedPrice float64                `json:"suggested_price"`
	Advice         Label                  `json:"advice"`
	Basis          string                 `json:"basis"`
	MarketAverage  *float64               `json:"market_average,omitempty"`
	SalesEstimate  *float64               `json:"sales_estimate,omitempty"`
	Listings       []market.ParsedListing `json:"listings,omitempty"`
	Warnings       []string               `json:"warnings,omitempty"`
}

type service struct {
	fetcher   market.Fetcher
	simulated *model.Simulated
	metrics   *metrics.PricingMetrics
	logg      *logger.Logger
}

// NewService builds the single-product analysis service.
func NewService(fetcher market.Fetcher, simulated *model.Simulated, m *metrics.PricingMetrics, logg *logger.Logger) (Service, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("competitor fetcher required")
	}
	if simulated == nil {
		return nil, fmt.Errorf("simulated model required")
	}
	return &service{fetcher: fetcher, simulated: simulated, metrics: m, logg: logg}, nil
}

// AnalyzeProduct derives a suggested price and advice for one product.
func (s *service) AnalyzeProduct(ctx context.Context, input AnalyzeInput) (*Analysis, error) {
	if input.ProductName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.CurrentPrice <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "current price must be positive")
	}

	started := time.Now()
	analysis := &Analysis{
		ProductName:  input.ProductName,
		CurrentPrice: input.CurrentPrice,
	}

	if s.logg != nil {
		ctx = s.logg.WithProduct(ctx, input.ProductName)
	}

	listings, err := s.fetcher.Fetch(ctx, input.ProductName)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "competitor lookup failed, falling back", err)
		}
		s.metrics.IncFallback("upstream_fetch")
		analysis.Warnings = append(analysis.Warnings, "competitor price source unavailable")
	}

	summary, aggErr := market.Aggregate(listings)
	if aggErr != nil {
		if err == nil {
			// the fetch itself worked; surface the parse outcome
			analysis.Warnings = append(analysis.Warnings, "no competitor listings could be parsed")
			s.metrics.IncFallback("no_valid_listings")
		}
		analysis.Basis = BasisSimulated
		analysis.SuggestedPrice = s.simulated.SuggestFromCurrent(input.CurrentPrice)
		analysis.Warnings = append(analysis.Warnings, "suggested price is a simulated estimate, not market-derived")
	} else {
		analysis.Basis = BasisMarketAverage
		analysis.Listings = summary.Listings
		mean, _ := summary.Mean.Float64()
		suggested, _ := summary.Suggested.Float64()
		analysis.MarketAverage = &mean
		analysis.SuggestedPrice = suggested
		estimate := market.EstimateSales(input.CurrentPrice, mean)
		analysis.SalesEstimate = &estimate
		if summary.Skipped > 0 {
			analysis.Warnings = append(analysis.Warnings,
				fmt.Sprintf("%d competitor listings had unparsable prices and were excluded", summary.Skipped))
		}
	}

	analysis.Advice = ClassifySingle(analysis.SuggestedPrice, input.CurrentPrice)

	s.metrics.ObservePredictDuration("single", time.Since(started))
	s.metrics.IncAdvice(analysis.Advice.MetricLabel())
	if s.logg != nil {
		s.logg.Info(s.logg.WithBasis(ctx, analysis.Basis), "product analyzed")
	}

	return analysis, nil
}

// Competitors returns the parsed competitor listings for display.
func (s *service) Competitors(ctx context.Context, product string) (*market.Summary, error) {
	if product == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}

	listings, err := s.fetcher.Fetch(ctx, product)
	if err != nil {
		return nil, err
	}

	return market.Aggregate(listings)
}
