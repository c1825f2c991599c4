package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	JWT          JWTConfig
	Password     PasswordConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"DROPENTREGAS_APP_ENV" default:"dev"`
	Port         string `envconfig:"DROPENTREGAS_APP_PORT" default:"4000"`
	LogLevel     string `envconfig:"DROPENTREGAS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DROPENTREGAS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"DROPENTREGAS_DB_DSN"`

	Host     string `envconfig:"DROPENTREGAS_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DROPENTREGAS_DB_PORT" default:"5432"`
	User     string `envconfig:"DROPENTREGAS_DB_USER" default:"postgres"`
	Password string `envconfig:"DROPENTREGAS_DB_PASSWORD"`
	Name     string `envconfig:"DROPENTREGAS_DB_NAME" default:"dropentregas"`
	SSLMode  string `envconfig:"DROPENTREGAS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DROPENTREGAS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DROPENTREGAS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DROPENTREGAS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DROPENTREGAS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type JWTConfig struct {
	Secret            string `envconfig:"DROPENTREGAS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DROPENTREGAS_JWT_ISSUER" default:"dropentregas"`
	ExpirationMinutes int    `envconfig:"DROPENTREGAS_JWT_EXPIRATION_MINUTES" default:"10080"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DROPENTREGAS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DROPENTREGAS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DROPENTREGAS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DROPENTREGAS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DROPENTREGAS_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DROPENTREGAS_CORS_ORIGINS" default:"http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DROPENTREGAS_AUTO_MIGRATE" default:"false"`
	AutoSeed    bool `envconfig:"DROPENTREGAS_AUTO_SEED" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.Host == "" || db.User == "" || db.Name == "" {
		return fmt.Errorf("either DROPENTREGAS_DB_DSN or DROPENTREGAS_DB_HOST, DROPENTREGAS_DB_USER, DROPENTREGAS_DB_NAME are required")
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
