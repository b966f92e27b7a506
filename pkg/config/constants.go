package config

const (
	// EnvPrefix namespaces every environment variable the app reads.
	EnvPrefix = "CAMPUSBOARD"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "CAMPUSBOARD_DB_DSN"
	EnvDBHost = "CAMPUSBOARD_DB_HOST"
	EnvDBUser = "CAMPUSBOARD_DB_USER"
	EnvDBName = "CAMPUSBOARD_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
