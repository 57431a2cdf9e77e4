package batch

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/multierr"

	"github.com/oscarvaldez-dev/pricepulse-backend/internal/features"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/model"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/pricing"
	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/logger"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/metrics"
)

// MarketPriceSource synthesizes a market price for rows that arrive without
// one. Stand-in for the competitor aggregator mean when no live data exists.
type MarketPriceSource interface {
	MarketPrice(product string) float64
}

// Orchestrator sequences market-price synthesis, feature alignment,
// prediction, and advice classification across a product table.
type Orchestrator struct {
	regressor model.Regressor
	marketSrc MarketPriceSource
	metrics   *metrics.PricingMetrics
	logg      *logger.Logger
}

// NewOrchestrator builds the batch pipeline. The regressor may be nil; the
// pipeline then fails per call with a model-unavailable error, which is the
// user-visible condition the batch path requires.
func NewOrchestrator(regressor model.Regressor, marketSrc MarketPriceSource, m *metrics.PricingMetrics, logg *logger.Logger) (*Orchestrator, error) {
	if marketSrc == nil {
		return nil, fmt.Errorf("market price source required")
	}
	return &Orchestrator{
		regressor: regressor,
		marketSrc: marketSrc,
		metrics:   m,
		logg:      logg,
	}, nil
}

// Enrich runs the pipeline over the whole table. Structural problems
// (missing Product/Price, no model) abort the batch before any row is
// touched; per-row gaps are zero-filled and flagged, never fatal.
func (o *Orchestrator) Enrich(ctx context.Context, rows []Row) (*Result, error) {
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table holds no rows")
	}
	if err := validateRequired(rows); err != nil {
		return nil, err
	}
	if o.regressor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeModelMissing, "batch pricing requires a trained model")
	}

	started := time.Now()
	out := make([]Row, len(rows))
	copy(out, rows)

	// market price synthesis fills gaps only; present values are kept as-is
	// so re-running on enriched output is stable
	for i := range out {
		if out[i].MarketPrice == nil {
			out[i].MarketPrice = floatPtr(o.marketSrc.MarketPrice(out[i].Product))
		}
	}

	records := make([]map[string]float64, len(out))
	for i, row := range out {
		records[i] = buildRecord(row)
	}

	result := &Result{Breakdown: map[string]int{}}

	schema := o.regressor.FeatureNames()
	if len(schema) == 0 {
		schema = features.NumericColumns(records)
		result.Degraded = true
		result.Warnings = append(result.Warnings,
			"model declares no feature schema; predictions use best-effort numeric columns and are low confidence")
		o.metrics.IncFallback("schema_unavailable")
	}

	vectors := make([][]float64, len(records))
	zeroFillTotal := 0
	for i, record := range records {
		vector, zeroFilled, err := features.Align(record, schema)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
		if len(zeroFilled) > 0 {
			out[i].LowConfidence = true
			zeroFillTotal++
		}
	}

	preds, err := o.regressor.Predict(vectors)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "model prediction failed")
	}
	if len(preds) != len(out) {
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("model returned %d predictions for %d rows", len(preds), len(out)))
	}

	for i := range out {
		suggested := math.Round(preds[i]*100) / 100
		out[i].SuggestedSellPrice = floatPtr(suggested)
		advice := pricing.Classify(suggested, *out[i].Price)
		out[i].PriceAdvice = advice
		result.Breakdown[string(advice)]++
		o.metrics.IncAdvice(advice.MetricLabel())
	}

	if zeroFillTotal > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d rows were missing expected features and had them zero-filled; their predictions are low confidence", zeroFillTotal))
	}

	result.Rows = out
	o.metrics.ObservePredictDuration("batch", time.Since(started))
	if o.logg != nil {
		ctx = o.logg.WithFields(ctx, map[string]any{
			"rows":        len(out),
			"zero_filled": zeroFillTotal,
			"degraded":    result.Degraded,
		})
		o.logg.Info(ctx, "batch enriched")
	}

	return result, nil
}

// validateRequired checks the whole table for the Product and Price columns
// before any row is processed. The findings are combined so the caller sees
// every structural gap at once.
func validateRequired(rows []Row) error {
	var combined error
	for i, row := range rows {
		if row.Product == "" {
			combined = multierr.Append(combined, fmt.Errorf("row %d: missing product", i))
		}
		if row.Price == nil {
			combined = multierr.Append(combined, fmt.Errorf("row %d: missing price", i))
		}
	}
	if combined == nil {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeMissingColumn, combined, "table is missing required Product/Price values").
		WithDetails(map[string]any{"problems": multierrStrings(combined)})
}

func multierrStrings(err error) []string {
	errs := multierr.Errors(err)
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

// buildRecord assembles the numeric feature record for one row. Product and
// Price never become features: Product is descriptive and Price is the
// training target.
func buildRecord(row Row) map[string]float64 {
	record := map[string]float64{}
	if row.Stock != nil {
		record["Stock"] = *row.Stock
	}
	if row.Sales != nil {
		record["Sales"] = *row.Sales
	}
	if row.MarketPrice != nil {
		record["Market_Price"] = *row.MarketPrice
	}
	features.ExpandCategory(record, row.Category)
	return record
}
