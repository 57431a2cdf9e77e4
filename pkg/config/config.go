package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Model     ModelConfig
	Market    MarketConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Market.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PRICEPULSE_APP_ENV" required:"true"`
	Port         string `envconfig:"PRICEPULSE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PRICEPULSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRICEPULSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// ModelConfig locates the trained regressor artifact. An empty or missing
// path is tolerated at startup; only the batch pipeline requires the model.
type ModelConfig struct {
	Path string `envconfig:"PRICEPULSE_MODEL_PATH" default:"model/pricing_model.json"`
}

// MarketConfig drives the competitor price lookup.
type MarketConfig struct {
	BaseURL      string        `envconfig:"PRICEPULSE_MARKET_BASE_URL" default:"https://serpapi.com/search"`
	APIKey       string        `envconfig:"PRICEPULSE_MARKET_API_KEY"`
	Engine       string        `envconfig:"PRICEPULSE_MARKET_ENGINE" default:"google_shopping"`
	FetchTimeout time.Duration `envconfig:"PRICEPULSE_MARKET_FETCH_TIMEOUT" default:"10s"`
	CacheTTL     time.Duration `envconfig:"PRICEPULSE_MARKET_CACHE_TTL" default:"15m"`
	Simulate     bool          `envconfig:"PRICEPULSE_MARKET_SIMULATE" default:"false"`
}

func (m MarketConfig) validate() error {
	if m.Simulate {
		return nil
	}
	if strings.TrimSpace(m.BaseURL) == "" {
		return fmt.Errorf("%s is required when simulation is off", EnvMarketBaseURL)
	}
	return nil
}

// RedisConfig is optional: with no URL the service runs without the
// competitor cache and without rate limiting.
type RedisConfig struct {
	URL          string        `envconfig:"PRICEPULSE_REDIS_URL"`
	PoolSize     int           `envconfig:"PRICEPULSE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRICEPULSE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRICEPULSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRICEPULSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRICEPULSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type RateLimitConfig struct {
	AnalyzeWindow  time.Duration `envconfig:"PRICEPULSE_RATE_LIMIT_ANALYZE_WINDOW" default:"1m"`
	AnalyzeIPLimit int           `envconfig:"PRICEPULSE_RATE_LIMIT_ANALYZE_IP_LIMIT" default:"30"`
}
