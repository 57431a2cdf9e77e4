package config

const EnvPrefix = "PRICEPULSE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv        = "PRICEPULSE_APP_ENV"
	EnvPort          = "PRICEPULSE_APP_PORT"
	EnvModelPath     = "PRICEPULSE_MODEL_PATH"
	EnvMarketBaseURL = "PRICEPULSE_MARKET_BASE_URL"
	EnvMarketAPIKey  = "PRICEPULSE_MARKET_API_KEY"
	EnvRedisURL      = "PRICEPULSE_REDIS_URL"
)
