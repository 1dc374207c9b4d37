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
	Inventory    InventoryConfig
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
	Env          string `envconfig:"IRONCLUB_APP_ENV" required:"true"`
	Port         string `envconfig:"IRONCLUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"IRONCLUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"IRONCLUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"IRONCLUB_DB_DSN"`
	Driver string `envconfig:"IRONCLUB_DB_DRIVER" default:"postgres"`

	// SQLitePath backs the single-file deployment mode; ignored for postgres.
	SQLitePath string `envconfig:"IRONCLUB_DB_SQLITE_PATH" default:"ironclub.db"`

	LegacyHost     string `envconfig:"IRONCLUB_DB_HOST"`
	LegacyPort     int    `envconfig:"IRONCLUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"IRONCLUB_DB_USER"`
	LegacyPassword string `envconfig:"IRONCLUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"IRONCLUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"IRONCLUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"IRONCLUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"IRONCLUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"IRONCLUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"IRONCLUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the embedded driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"IRONCLUB_REDIS_URL"`
	Address      string        `envconfig:"IRONCLUB_REDIS_ADDR"`
	Password     string        `envconfig:"IRONCLUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"IRONCLUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"IRONCLUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"IRONCLUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"IRONCLUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"IRONCLUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"IRONCLUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any Redis endpoint was configured. The idempotency
// layer is skipped entirely when it is not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type InventoryConfig struct {
	DefaultMinStockLevel int  `envconfig:"IRONCLUB_INVENTORY_MIN_STOCK_LEVEL" default:"5"`
	SeedOnBoot           bool `envconfig:"IRONCLUB_INVENTORY_SEED_ON_BOOT" default:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"IRONCLUB_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.IsSQLite() {
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	}
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
