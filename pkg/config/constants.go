package config

const (
	// EnvPrefix is passed to envconfig; individual fields carry full names.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvDBDSN  = "VENUEBOOKS_DB_DSN"
	EnvDBHost = "VENUEBOOKS_DB_HOST"
	EnvDBUser = "VENUEBOOKS_DB_USER"
	EnvDBName = "VENUEBOOKS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
