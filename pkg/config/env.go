package config

const (
	EnvPrefix = "BAABUU"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "BAABUU_APP_ENV"
	EnvPort         = "BAABUU_APP_PORT"
	EnvPublicOrigin = "BAABUU_PUBLIC_ORIGIN"
	EnvAPIBaseURL   = "BAABUU_API_BASE_URL"
	EnvMediaBaseURL = "BAABUU_MEDIA_BASE_URL"
	EnvRedisURL     = "BAABUU_REDIS_URL"
	EnvCacheTTL     = "BAABUU_CATALOG_CACHE_TTL"
)
