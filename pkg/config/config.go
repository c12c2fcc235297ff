package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is empty because every field names its variable in full.
const EnvPrefix = ""

// Environment names accepted in LOCALMART_APP_ENV.
const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Env var names reused by tests.
const (
	EnvAppEnv      = "LOCALMART_APP_ENV"
	EnvPort        = "LOCALMART_APP_PORT"
	EnvDBDSN       = "LOCALMART_DB_DSN"
	EnvMapboxToken = "LOCALMART_MAPBOX_TOKEN"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Geocoder     GeocoderConfig
	Search       SearchConfig
	Delivery     DeliveryConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LOCALMART_APP_ENV" required:"true"`
	Port         string `envconfig:"LOCALMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LOCALMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LOCALMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"LOCALMART_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"LOCALMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LOCALMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LOCALMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LOCALMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type GeocoderConfig struct {
	MapboxToken string        `envconfig:"LOCALMART_MAPBOX_TOKEN" required:"true"`
	BaseURL     string        `envconfig:"LOCALMART_MAPBOX_BASE_URL"`
	Timeout     time.Duration `envconfig:"LOCALMART_GEOCODER_TIMEOUT" default:"10s"`
}

type SearchConfig struct {
	QueryTimeout    time.Duration `envconfig:"LOCALMART_SEARCH_QUERY_TIMEOUT" default:"5s"`
	RateLimitWindow time.Duration `envconfig:"LOCALMART_SEARCH_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitPerIP  int           `envconfig:"LOCALMART_SEARCH_RATE_LIMIT_PER_IP" default:"60"`
}

type DeliveryConfig struct {
	BaseFee       string  `envconfig:"LOCALMART_DELIVERY_BASE_FEE" default:"2.50"`
	FeePerKm      string  `envconfig:"LOCALMART_DELIVERY_FEE_PER_KM" default:"1.10"`
	MaxDistanceKm float64 `envconfig:"LOCALMART_DELIVERY_MAX_DISTANCE_KM" default:"30"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LOCALMART_REDIS_URL"`
	PoolSize     int           `envconfig:"LOCALMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LOCALMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LOCALMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LOCALMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LOCALMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LOCALMART_AUTO_MIGRATE" default:"false"`
}
