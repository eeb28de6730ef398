package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Backend       BackendConfig
	Redis         RedisConfig
	Catalog       CatalogConfig
	Cron          CronConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
	Store         StoreConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BAABUU_APP_ENV" required:"true"`
	Port         string `envconfig:"BAABUU_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BAABUU_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BAABUU_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"BAABUU_LOG_FORMAT" default:"json"`
	// PublicOrigin is the origin this service is served from. It stands in for
	// the browser's current origin when no API or media base is configured.
	PublicOrigin string `envconfig:"BAABUU_PUBLIC_ORIGIN"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type BackendConfig struct {
	APIBaseURL   string        `envconfig:"BAABUU_API_BASE_URL"`
	MediaBaseURL string        `envconfig:"BAABUU_MEDIA_BASE_URL"`
	Timeout      time.Duration `envconfig:"BAABUU_API_TIMEOUT" default:"10s"`
	// BufferPageSize is how many records are requested when a view needs the
	// whole collection (dashboard, analytics, export).
	BufferPageSize int `envconfig:"BAABUU_API_BUFFER_PAGE_SIZE" default:"1000"`
	ExportPageSize int `envconfig:"BAABUU_API_EXPORT_PAGE_SIZE" default:"10000"`
}

// APIBase returns the configured API origin, falling back to the public origin.
func (b BackendConfig) APIBase(publicOrigin string) string {
	if base := trimBase(b.APIBaseURL); base != "" {
		return base
	}
	return trimBase(publicOrigin)
}

// MediaBase returns the media origin. It defaults to the API origin.
func (b BackendConfig) MediaBase(publicOrigin string) string {
	if base := trimBase(b.MediaBaseURL); base != "" {
		return base
	}
	return b.APIBase(publicOrigin)
}

type RedisConfig struct {
	URL          string        `envconfig:"BAABUU_REDIS_URL"`
	Address      string        `envconfig:"BAABUU_REDIS_ADDR"`
	Password     string        `envconfig:"BAABUU_REDIS_PASSWORD"`
	DB           int           `envconfig:"BAABUU_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BAABUU_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BAABUU_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BAABUU_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BAABUU_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BAABUU_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CatalogConfig struct {
	AdminPageSize      int           `envconfig:"BAABUU_ADMIN_PAGE_SIZE" default:"20"`
	StorefrontPageSize int           `envconfig:"BAABUU_STOREFRONT_PAGE_SIZE" default:"12"`
	FeaturedLimit      int           `envconfig:"BAABUU_HOME_FEATURED_LIMIT" default:"8"`
	HotLimit           int           `envconfig:"BAABUU_HOME_HOT_LIMIT" default:"4"`
	HomeCategoryLimit  int           `envconfig:"BAABUU_HOME_CATEGORY_LIMIT" default:"3"`
	RelatedLimit       int           `envconfig:"BAABUU_RELATED_LIMIT" default:"4"`
	RecentLimit        int           `envconfig:"BAABUU_DASHBOARD_RECENT_LIMIT" default:"5"`
	CacheTTL           time.Duration `envconfig:"BAABUU_CATALOG_CACHE_TTL" default:"5m"`
}

type CronConfig struct {
	Interval   time.Duration `envconfig:"BAABUU_CRON_INTERVAL" default:"10m"`
	LockTTL    time.Duration `envconfig:"BAABUU_CRON_LOCK_TTL" default:"9m"`
	JobTimeout time.Duration `envconfig:"BAABUU_CRON_JOB_TIMEOUT" default:"2m"`
}

type AuthRateLimitConfig struct {
	LoginWindow    time.Duration `envconfig:"BAABUU_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUserLimit int           `envconfig:"BAABUU_AUTH_RATE_LIMIT_LOGIN_USER_LIMIT" default:"5"`
	LoginIPLimit   int           `envconfig:"BAABUU_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BAABUU_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// StoreConfig holds the read-only storefront settings shown in the admin console.
type StoreConfig struct {
	SiteName              string  `envconfig:"BAABUU_SITE_NAME" default:"Baabuu Clothing"`
	SiteDescription       string  `envconfig:"BAABUU_SITE_DESCRIPTION" default:"Premium clothing store"`
	ContactEmail          string  `envconfig:"BAABUU_CONTACT_EMAIL"`
	Currency              string  `envconfig:"BAABUU_CURRENCY" default:"USD"`
	TaxRate               float64 `envconfig:"BAABUU_TAX_RATE" default:"0.08"`
	ShippingCost          float64 `envconfig:"BAABUU_SHIPPING_COST" default:"5.99"`
	FreeShippingThreshold float64 `envconfig:"BAABUU_FREE_SHIPPING_THRESHOLD" default:"50"`
}

func (c *Config) normalize() error {
	for _, raw := range []struct {
		env   string
		value string
	}{
		{EnvPublicOrigin, c.App.PublicOrigin},
		{EnvAPIBaseURL, c.Backend.APIBaseURL},
		{EnvMediaBaseURL, c.Backend.MediaBaseURL},
	} {
		if raw.value == "" {
			continue
		}
		if err := validateOrigin(raw.value); err != nil {
			return fmt.Errorf("%s: %w", raw.env, err)
		}
	}
	c.App.PublicOrigin = trimBase(c.App.PublicOrigin)
	c.Backend.APIBaseURL = trimBase(c.Backend.APIBaseURL)
	c.Backend.MediaBaseURL = trimBase(c.Backend.MediaBaseURL)
	if c.Backend.APIBase(c.App.PublicOrigin) == "" {
		return fmt.Errorf("either %s or %s is required", EnvAPIBaseURL, EnvPublicOrigin)
	}
	return nil
}

func validateOrigin(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func trimBase(value string) string {
	return strings.TrimRight(strings.TrimSpace(value), "/")
}
