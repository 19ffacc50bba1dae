package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "JUSTO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Shopify      ShopifyConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"JUSTO_APP_ENV" required:"true"`
	Port         string `envconfig:"JUSTO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"JUSTO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JUSTO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"JUSTO_DB_DSN"`
	Driver string `envconfig:"JUSTO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"JUSTO_DB_HOST"`
	Port     int    `envconfig:"JUSTO_DB_PORT" default:"5432"`
	User     string `envconfig:"JUSTO_DB_USER"`
	Password string `envconfig:"JUSTO_DB_PASSWORD"`
	Name     string `envconfig:"JUSTO_DB_NAME"`
	SSLMode  string `envconfig:"JUSTO_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"JUSTO_DB_SQLITE_PATH" default:"justo.db"`

	MaxOpenConns    int           `envconfig:"JUSTO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"JUSTO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"JUSTO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JUSTO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"JUSTO_REDIS_URL"`
	Address      string        `envconfig:"JUSTO_REDIS_ADDR"`
	Password     string        `envconfig:"JUSTO_REDIS_PASSWORD"`
	DB           int           `envconfig:"JUSTO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"JUSTO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JUSTO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JUSTO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JUSTO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JUSTO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. The cart
// store and idempotency middleware degrade to in-process behavior without it.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CartConfig struct {
	SessionTTL time.Duration `envconfig:"JUSTO_CART_SESSION_TTL" default:"72h"`
}

type ShopifyConfig struct {
	Domain          string `envconfig:"JUSTO_SHOPIFY_DOMAIN" required:"true"`
	StorefrontToken string `envconfig:"JUSTO_SHOPIFY_STOREFRONT_TOKEN" required:"true"`
	APIVersion      string `envconfig:"JUSTO_SHOPIFY_API_VERSION" default:"2024-01"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"JUSTO_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"JUSTO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"JUSTO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		"JUSTO_DB_HOST": db.Host,
		"JUSTO_DB_USER": db.User,
		"JUSTO_DB_NAME": db.Name,
	}
	for _, key := range []string{"JUSTO_DB_HOST", "JUSTO_DB_USER", "JUSTO_DB_NAME"} {
		if values[key] == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either JUSTO_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
