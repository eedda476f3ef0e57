package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "FYP"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "FYP_APP_ENV"
	EnvPort     = "FYP_APP_PORT"
	EnvDBDSN    = "FYP_DB_DSN"
	EnvDBHost   = "FYP_DB_HOST"
	EnvDBUser   = "FYP_DB_USER"
	EnvDBName   = "FYP_DB_NAME"
	EnvRedisURL = "FYP_REDIS_URL"

	EnvJWTSecret              = "FYP_JWT_SECRET"
	EnvJWTIssuer              = "FYP_JWT_ISSUER"
	EnvJWTExpMins             = "FYP_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "FYP_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Routine       RoutineConfig
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
	Env          string `envconfig:"FYP_APP_ENV" required:"true"`
	Port         string `envconfig:"FYP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FYP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FYP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FYP_DB_DSN"`
	Driver string `envconfig:"FYP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FYP_DB_HOST"`
	LegacyPort     int    `envconfig:"FYP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FYP_DB_USER"`
	LegacyPassword string `envconfig:"FYP_DB_PASSWORD"`
	LegacyName     string `envconfig:"FYP_DB_NAME"`
	LegacySSLMode  string `envconfig:"FYP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FYP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FYP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FYP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FYP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FYP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FYP_REDIS_ADDR"`
	Password     string        `envconfig:"FYP_REDIS_PASSWORD"`
	DB           int           `envconfig:"FYP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FYP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FYP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FYP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FYP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FYP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"FYP_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"FYP_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"FYP_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"FYP_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FYP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FYP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FYP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FYP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FYP_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"FYP_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"FYP_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"FYP_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"FYP_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"FYP_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"FYP_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FYP_AUTO_MIGRATE" default:"false"`
}

// RoutineConfig tunes the routine composition read path.
type RoutineConfig struct {
	// TagMatchLimit caps how many workouts a tag-initialized day resolves to.
	TagMatchLimit int `envconfig:"FYP_ROUTINE_TAG_MATCH_LIMIT" default:"10"`
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
