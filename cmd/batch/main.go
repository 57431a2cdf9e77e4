package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oscarvaldez-dev/pricepulse-backend/internal/batch"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/market"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/model"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/logger"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/metrics"
)

func main() {
	var (
		inPath    = flag.String("in", "", "input product CSV")
		outPath   = flag.String("out", "", "output CSV (default: stdout)")
		modelPath = flag.String("model", "model/pricing_model.json", "trained model artifact")
	)
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "batch"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	if *inPath == "" {
		logg.Error(ctx, "missing -in flag", nil)
		os.Exit(2)
	}

	regressor, err := model.Load(*modelPath)
	if err != nil {
		logg.Error(logg.WithField(ctx, "path", *modelPath), "failed to load model artifact", err)
		os.Exit(1)
	}

	in, err := os.Open(*inPath)
	if err != nil {
		logg.Error(ctx, "failed to open input", err)
		os.Exit(1)
	}
	defer in.Close()

	rows, warnings, err := batch.ReadTable(in)
	if err != nil {
		logg.Error(ctx, "failed to read product table", err)
		os.Exit(1)
	}
	for _, warning := range warnings {
		logg.Warn(logg.WithField(ctx, "warning", warning), "table.read")
	}

	orch, err := batch.NewOrchestrator(regressor, market.NewSimulatedMarket(nil), metrics.NewPricingMetrics(prometheus.NewRegistry()), logg)
	if err != nil {
		logg.Error(ctx, "failed to build batch pipeline", err)
		os.Exit(1)
	}

	result, err := orch.Enrich(ctx, rows)
	if err != nil {
		logg.Error(ctx, "batch enrichment failed", err)
		os.Exit(1)
	}
	for _, warning := range result.Warnings {
		logg.Warn(logg.WithField(ctx, "warning", warning), "table.enrich")
	}

	out := os.Stdout
	if *outPath != "" {
		out, err = os.Create(*outPath)
		if err != nil {
			logg.Error(ctx, "failed to create output", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	if err := batch.WriteTable(out, result.Rows); err != nil {
		logg.Error(ctx, "failed to write enriched table", err)
		os.Exit(1)
	}

	summary := logg.WithFields(ctx, map[string]any{
		"rows":      len(result.Rows),
		"breakdown": result.Breakdown,
		"degraded":  result.Degraded,
	})
	logg.Info(summary, "batch enrichment complete")
}
