package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oscarvaldez-dev/pricepulse-backend/api/routes"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/batch"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/market"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/model"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/pricing"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/config"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/logger"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/metrics"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	// the model only gates the batch path, so a missing artifact is a
	// degraded start, not a failed one
	var regressor model.Regressor
	if loaded, err := model.Load(cfg.Model.Path); err != nil {
		if os.IsNotExist(err) {
			ctx := logg.WithField(context.Background(), "path", cfg.Model.Path)
			logg.Warn(ctx, "model artifact not found, batch pricing disabled")
		} else {
			logg.Error(context.Background(), "failed to load model artifact", err)
			os.Exit(1)
		}
	} else {
		regressor = loaded
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, caching and rate limiting disabled")
	}

	pricingMetrics := metrics.NewPricingMetrics(prometheus.DefaultRegisterer)

	var fetcher market.Fetcher
	if cfg.Market.Simulate {
		fetcher = market.NewSimulatedSource(nil)
	} else {
		httpFetcher, err := market.NewHTTPFetcher(cfg.Market)
		if err != nil {
			logg.Error(context.Background(), "failed to build competitor fetcher", err)
			os.Exit(1)
		}
		fetcher = httpFetcher
	}
	fetcher = market.NewCachedFetcher(fetcher, redisClient, cfg.Market.CacheTTL, logg)

	pricingService, err := pricing.NewService(fetcher, model.NewSimulated(nil), pricingMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	orchestrator, err := batch.NewOrchestrator(regressor, market.NewSimulatedMarket(nil), pricingMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create batch pipeline", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, regressor, pricingService, orchestrator),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
