package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable this service reads.
	EnvPrefix = "AUDIR"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "AUDIR_DB_DSN"
	EnvDBHost = "AUDIR_DB_HOST"
	EnvDBUser = "AUDIR_DB_USER"
	EnvDBName = "AUDIR_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	JWT           JWTConfig
	Password      PasswordConfig
	CORS          CORSConfig
	AuthRateLimit AuthRateLimitConfig
	Redis         RedisConfig
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
	Env          string `envconfig:"AUDIR_APP_ENV" required:"true"`
	Port         string `envconfig:"AUDIR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"AUDIR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AUDIR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"AUDIR_DB_DSN"`

	Host     string `envconfig:"AUDIR_DB_HOST"`
	Port     int    `envconfig:"AUDIR_DB_PORT" default:"5432"`
	User     string `envconfig:"AUDIR_DB_USER"`
	Password string `envconfig:"AUDIR_DB_PASSWORD"`
	Name     string `envconfig:"AUDIR_DB_NAME"`
	SSLMode  string `envconfig:"AUDIR_DB_SSLMODE" default:"require"`

	MaxOpenConns    int           `envconfig:"AUDIR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AUDIR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AUDIR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AUDIR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type JWTConfig struct {
	Secret            string `envconfig:"AUDIR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AUDIR_JWT_ISSUER" default:"audir"`
	ExpirationMinutes int    `envconfig:"AUDIR_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AUDIR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AUDIR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AUDIR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AUDIR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AUDIR_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"AUDIR_CORS_ALLOWED_ORIGINS" default:"http://localhost:4200"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"AUDIR_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"AUDIR_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"AUDIR_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AUDIR_REDIS_URL"`
	Address      string        `envconfig:"AUDIR_REDIS_ADDR"`
	Password     string        `envconfig:"AUDIR_REDIS_PASSWORD"`
	DB           int           `envconfig:"AUDIR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AUDIR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AUDIR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AUDIR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AUDIR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AUDIR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. Login rate
// limiting is skipped when it is absent.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AUDIR_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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
