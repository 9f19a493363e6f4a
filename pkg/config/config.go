package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is passed to envconfig; every variable is spelled out in full on
// its struct tag so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Catalog      CatalogConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string   `envconfig:"GROMART_APP_ENV" required:"true"`
	Port         string   `envconfig:"GROMART_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"GROMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"GROMART_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"GROMART_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GROMART_DB_DSN"`
	Driver string `envconfig:"GROMART_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"GROMART_DB_HOST"`
	Port     int    `envconfig:"GROMART_DB_PORT" default:"5432"`
	User     string `envconfig:"GROMART_DB_USER"`
	Password string `envconfig:"GROMART_DB_PASSWORD"`
	Name     string `envconfig:"GROMART_DB_NAME"`
	SSLMode  string `envconfig:"GROMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GROMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GROMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GROMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GROMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GROMART_REDIS_URL"`
	Address      string        `envconfig:"GROMART_REDIS_ADDR"`
	Password     string        `envconfig:"GROMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"GROMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GROMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GROMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GROMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GROMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GROMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"GROMART_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"GROMART_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"GROMART_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"GROMART_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GROMART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GROMART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GROMART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GROMART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GROMART_ARGON_KEY_LEN" default:"32"`
}

// CatalogConfig bounds catalog reads so a flaky database cannot park clients
// in a loading state forever.
type CatalogConfig struct {
	ReadTimeout  time.Duration `envconfig:"GROMART_CATALOG_READ_TIMEOUT" default:"5s"`
	ReadRetries  int           `envconfig:"GROMART_CATALOG_READ_RETRIES" default:"3"`
	RetryBackoff time.Duration `envconfig:"GROMART_CATALOG_RETRY_BACKOFF" default:"300ms"`
}

type CheckoutConfig struct {
	IdempotencyTTL time.Duration `envconfig:"GROMART_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
	WhatsAppNumber string        `envconfig:"GROMART_WHATSAPP_NUMBER" default:"2348000000000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GROMART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	required := map[string]string{
		"GROMART_DB_HOST": db.Host,
		"GROMART_DB_USER": db.User,
		"GROMART_DB_NAME": db.Name,
	}
	for _, key := range []string{"GROMART_DB_HOST", "GROMART_DB_USER", "GROMART_DB_NAME"} {
		if required[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either GROMART_DB_DSN or %s are required", strings.Join(missing, ", "))
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
