package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Pricing   PricingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FILTERCORE_APP_ENV" required:"true"`
	Port         string `envconfig:"FILTERCORE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FILTERCORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FILTERCORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FILTERCORE_DB_DSN"`
	Driver string `envconfig:"FILTERCORE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FILTERCORE_DB_HOST"`
	LegacyPort     int    `envconfig:"FILTERCORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FILTERCORE_DB_USER"`
	LegacyPassword string `envconfig:"FILTERCORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"FILTERCORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"FILTERCORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FILTERCORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FILTERCORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FILTERCORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FILTERCORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"FILTERCORE_DB_AUTO_MIGRATE" default:"false"`
}

// ensureDSN assembles a DSN from the legacy host/user fields when no DSN is set.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either FILTERCORE_DB_DSN or FILTERCORE_DB_HOST/USER/NAME must be set")
	}
	userInfo := url.User(d.LegacyUser)
	if d.LegacyPassword != "" {
		userInfo = url.UserPassword(d.LegacyUser, d.LegacyPassword)
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:     d.LegacyName,
		RawQuery: url.Values{"sslmode": []string{d.LegacySSLMode}}.Encode(),
	}
	d.DSN = dsn.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"FILTERCORE_REDIS_URL" required:"true"`
	Password     string        `envconfig:"FILTERCORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"FILTERCORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FILTERCORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FILTERCORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FILTERCORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FILTERCORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FILTERCORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type RateLimitConfig struct {
	QuoteWindow   time.Duration `envconfig:"FILTERCORE_RATE_LIMIT_QUOTE_WINDOW" default:"1m"`
	QuoteIPLimit  int           `envconfig:"FILTERCORE_RATE_LIMIT_QUOTE_IP_LIMIT" default:"60"`
	RewardWindow  time.Duration `envconfig:"FILTERCORE_RATE_LIMIT_REWARD_WINDOW" default:"1m"`
	RewardIPLimit int           `envconfig:"FILTERCORE_RATE_LIMIT_REWARD_IP_LIMIT" default:"30"`
}

type PricingConfig struct {
	MaxCartItems int `envconfig:"FILTERCORE_PRICING_MAX_CART_ITEMS" default:"100"`
}
