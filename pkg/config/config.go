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
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Introspection IntrospectionConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Catalog       CatalogConfig
	Audit         AuditConfig
	Retry         RetryConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"GLAMBOOK_APP_ENV" required:"true"`
	Port         string `envconfig:"GLAMBOOK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GLAMBOOK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GLAMBOOK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GLAMBOOK_DB_DSN"`
	Driver string `envconfig:"GLAMBOOK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GLAMBOOK_DB_HOST"`
	LegacyPort     int    `envconfig:"GLAMBOOK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GLAMBOOK_DB_USER"`
	LegacyPassword string `envconfig:"GLAMBOOK_DB_PASSWORD"`
	LegacyName     string `envconfig:"GLAMBOOK_DB_NAME"`
	LegacySSLMode  string `envconfig:"GLAMBOOK_DB_SSLMODE" default:"disable"`

	MaxOpenConns     int           `envconfig:"GLAMBOOK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns     int           `envconfig:"GLAMBOOK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime  time.Duration `envconfig:"GLAMBOOK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime  time.Duration `envconfig:"GLAMBOOK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	StatementTimeout time.Duration `envconfig:"GLAMBOOK_DB_STATEMENT_TIMEOUT" default:"15s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GLAMBOOK_REDIS_URL"`
	Address      string        `envconfig:"GLAMBOOK_REDIS_ADDR"`
	Password     string        `envconfig:"GLAMBOOK_REDIS_PASSWORD"`
	DB           int           `envconfig:"GLAMBOOK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GLAMBOOK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GLAMBOOK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GLAMBOOK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GLAMBOOK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GLAMBOOK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GLAMBOOK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GLAMBOOK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"GLAMBOOK_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// IntrospectionConfig points at the external identity provider used as a
// fallback when a bearer token is not a locally minted JWT.
type IntrospectionConfig struct {
	URL          string        `envconfig:"GLAMBOOK_INTROSPECTION_URL"`
	ClientID     string        `envconfig:"GLAMBOOK_INTROSPECTION_CLIENT_ID"`
	ClientSecret string        `envconfig:"GLAMBOOK_INTROSPECTION_CLIENT_SECRET"`
	Timeout      time.Duration `envconfig:"GLAMBOOK_INTROSPECTION_TIMEOUT" default:"5s"`
}

func (i IntrospectionConfig) Enabled() bool {
	return strings.TrimSpace(i.URL) != ""
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GLAMBOOK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GLAMBOOK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GLAMBOOK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GLAMBOOK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GLAMBOOK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"GLAMBOOK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"GLAMBOOK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"GLAMBOOK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`

	RegisterWindow     time.Duration `envconfig:"GLAMBOOK_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"1h"`
	RegisterEmailLimit int           `envconfig:"GLAMBOOK_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"GLAMBOOK_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"10"`
}

// CatalogConfig selects the public catalog source once at process start.
type CatalogConfig struct {
	Source string `envconfig:"GLAMBOOK_CATALOG_SOURCE" default:"live"`
}

func (c CatalogConfig) IsStatic() bool {
	return strings.EqualFold(strings.TrimSpace(c.Source), CatalogSourceStatic)
}

type AuditConfig struct {
	Interval  time.Duration `envconfig:"GLAMBOOK_AUDIT_INTERVAL" default:"24h"`
	LockTTL   time.Duration `envconfig:"GLAMBOOK_AUDIT_LOCK_TTL" default:"1h"`
	RunAtBoot bool          `envconfig:"GLAMBOOK_AUDIT_RUN_AT_BOOT" default:"true"`
}

type RetryConfig struct {
	MaxAttempts int           `envconfig:"GLAMBOOK_RETRY_MAX_ATTEMPTS" default:"3"`
	BaseDelay   time.Duration `envconfig:"GLAMBOOK_RETRY_BASE_DELAY" default:"200ms"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GLAMBOOK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
