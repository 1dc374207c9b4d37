package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "ironclub"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Environment variable names referenced outside struct tags (tests, error
// messages).
const (
	EnvAppEnv   = "IRONCLUB_APP_ENV"
	EnvPort     = "IRONCLUB_APP_PORT"
	EnvDBDSN    = "IRONCLUB_DB_DSN"
	EnvDBDriver = "IRONCLUB_DB_DRIVER"
	EnvDBHost   = "IRONCLUB_DB_HOST"
	EnvDBUser   = "IRONCLUB_DB_USER"
	EnvDBName   = "IRONCLUB_DB_NAME"
	EnvRedisURL = "IRONCLUB_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
