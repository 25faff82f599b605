package config

const (
	// EnvPrefix is the envconfig prefix shared by every binary.
	EnvPrefix = "GLAMBOOK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	CatalogSourceLive   = "live"
	CatalogSourceStatic = "static"

	EnvDBDSN  = "GLAMBOOK_DB_DSN"
	EnvDBHost = "GLAMBOOK_DB_HOST"
	EnvDBUser = "GLAMBOOK_DB_USER"
	EnvDBName = "GLAMBOOK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
