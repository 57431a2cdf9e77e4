package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oscarvaldez-dev/pricepulse-backend/api/controllers"
	"github.com/oscarvaldez-dev/pricepulse-backend/api/middleware"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/batch"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/model"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/pricing"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/config"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/logger"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	regressor model.Regressor,
	pricingService pricing.Service,
	orchestrator *batch.Orchestrator,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingerOrNil(redisClient), regressor))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/pricing", func(r chi.Router) {
			r.With(analyzeLimiter(cfg, logg, redisClient)).
				Post("/analyze", controllers.AnalyzeProduct(pricingService, logg))
			r.Post("/batch", controllers.EnrichBatch(orchestrator, logg))
		})
		r.Get("/competitors", controllers.Competitors(pricingService, logg))
		r.Post("/documents/extract", controllers.ExtractFinancials(logg))
	})

	return r
}

// pingerOrNil avoids handing a typed-nil client to the readiness check.
func pingerOrNil(c *redis.Client) redis.Pinger {
	if c == nil {
		return nil
	}
	return c
}

// analyzeLimiter rate limits the analyze endpoint when Redis is available
// and is a no-op middleware otherwise.
func analyzeLimiter(cfg *config.Config, logg *logger.Logger, redisClient *redis.Client) func(http.Handler) http.Handler {
	if redisClient == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.RateLimit(redisClient, logg, middleware.RateLimitPolicy{
		Name:    "analyze",
		Window:  cfg.RateLimit.AnalyzeWindow,
		IPLimit: cfg.RateLimit.AnalyzeIPLimit,
	})
}
