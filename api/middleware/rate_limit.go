package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/oscarvaldez-dev/pricepulse-backend/api/responses"
	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/logger"
)

// RateLimitPolicy describes a fixed-window per-IP limit for one endpoint.
type RateLimitPolicy struct {
	Name    string
	Window  time.Duration
	IPLimit int
}

func (p RateLimitPolicy) normalizedName() string {
	name := strings.TrimSpace(strings.ToLower(p.Name))
	if name == "" {
		return "default"
	}
	return strings.ReplaceAll(name, " ", "_")
}

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimit enforces the policy against the caller's IP. A nil store or a
// store failure lets the request through so a cache outage never takes the
// endpoint down with it.
func RateLimit(store rateLimiterStore, logg *logger.Logger, policy RateLimitPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || policy.IPLimit <= 0 || policy.Window <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := clientIP(r)
			scope := fmt.Sprintf("%s:ip:%s", policy.normalizedName(), ip)

			allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(policy.IPLimit), policy.Window)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "policy", policy.normalizedName()), "rate_limit.store_unavailable")
				}
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				respondRateLimited(ctx, logg, w, policy, ip, count)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy RateLimitPolicy, ip string, count int64) {
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"policy":         policy.normalizedName(),
			"ip":             ip,
			"attempts":       count,
			"limit":          policy.IPLimit,
			"window_seconds": int(policy.Window.Seconds()),
		})
		logg.Warn(logCtx, "rate_limit.blocked")
	}
	err := pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded")
	responses.WriteError(ctx, nil, w, err)
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
