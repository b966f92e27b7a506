package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Password     PasswordConfig
	WebPush      WebPushConfig
	Cron         CronConfig
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
	Env          string `envconfig:"CAMPUSBOARD_APP_ENV" required:"true"`
	Port         string `envconfig:"CAMPUSBOARD_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"CAMPUSBOARD_APP_BASE_URL" default:"http://localhost:3000"`
	LogLevel     string `envconfig:"CAMPUSBOARD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAMPUSBOARD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CAMPUSBOARD_DB_DSN"`
	Driver string `envconfig:"CAMPUSBOARD_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CAMPUSBOARD_DB_HOST"`
	LegacyPort     int    `envconfig:"CAMPUSBOARD_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CAMPUSBOARD_DB_USER"`
	LegacyPassword string `envconfig:"CAMPUSBOARD_DB_PASSWORD"`
	LegacyName     string `envconfig:"CAMPUSBOARD_DB_NAME"`
	LegacySSLMode  string `envconfig:"CAMPUSBOARD_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CAMPUSBOARD_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CAMPUSBOARD_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CAMPUSBOARD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CAMPUSBOARD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CAMPUSBOARD_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CAMPUSBOARD_REDIS_ADDR"`
	Password     string        `envconfig:"CAMPUSBOARD_REDIS_PASSWORD"`
	DB           int           `envconfig:"CAMPUSBOARD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CAMPUSBOARD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CAMPUSBOARD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CAMPUSBOARD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CAMPUSBOARD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CAMPUSBOARD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig drives the signed session cookie and its Redis allowlist.
type SessionConfig struct {
	Secret       string `envconfig:"CAMPUSBOARD_SESSION_SECRET" required:"true"`
	Issuer       string `envconfig:"CAMPUSBOARD_SESSION_ISSUER" required:"true"`
	TTLHours     int    `envconfig:"CAMPUSBOARD_SESSION_TTL_HOURS" default:"168"`
	CookieName   string `envconfig:"CAMPUSBOARD_SESSION_COOKIE_NAME" default:"session"`
	CookieSecure bool   `envconfig:"CAMPUSBOARD_SESSION_COOKIE_SECURE" default:"false"`
}

// TTL returns the session lifetime configured in hours.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLHours <= 0 {
		return 0
	}
	return time.Duration(s.TTLHours) * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CAMPUSBOARD_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CAMPUSBOARD_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CAMPUSBOARD_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CAMPUSBOARD_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CAMPUSBOARD_ARGON_KEY_LEN" default:"32"`
}

// WebPushConfig carries the VAPID identity used to sign push deliveries.
type WebPushConfig struct {
	VAPIDPublicKey  string        `envconfig:"CAMPUSBOARD_VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string        `envconfig:"CAMPUSBOARD_VAPID_PRIVATE_KEY"`
	Subscriber      string        `envconfig:"CAMPUSBOARD_VAPID_SUBSCRIBER" default:"bulletin@campuskit.dev"`
	TTLSeconds      int           `envconfig:"CAMPUSBOARD_WEBPUSH_TTL_SECONDS" default:"86400"`
	Timeout         time.Duration `envconfig:"CAMPUSBOARD_WEBPUSH_TIMEOUT" default:"10s"`
}

// Enabled reports whether push delivery is configured.
func (w WebPushConfig) Enabled() bool {
	return w.VAPIDPublicKey != "" && w.VAPIDPrivateKey != ""
}

type CronConfig struct {
	Interval                  time.Duration `envconfig:"CAMPUSBOARD_CRON_INTERVAL" default:"24h"`
	NotificationRetentionDays int           `envconfig:"CAMPUSBOARD_NOTIFICATION_RETENTION_DAYS" default:"30"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CAMPUSBOARD_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CAMPUSBOARD_AUTO_MIGRATE" default:"false"`
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
