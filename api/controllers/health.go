package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/oscarvaldez-dev/pricepulse-backend/api/responses"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/model"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/config"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/logger"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/redis"
)

const envHeader = "X-PricePulse-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports per-dependency status. Redis is optional, so its
// absence reports "disabled" rather than failing readiness. A missing model
// degrades the batch path only, which readiness reflects but does not fail on.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient redis.Pinger, regressor model.Regressor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		switch {
		case redisClient == nil:
			checks["redis"] = "disabled"
		default:
			if err := redisClient.Ping(ctx); err != nil {
				checks["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health.redis", err)
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		if regressor == nil {
			checks["model"] = "missing"
		} else {
			checks["model"] = "ok"
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}

		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
