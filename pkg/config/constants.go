package config

const (
	// EnvPrefix scopes every environment variable read by envconfig.
	EnvPrefix = "FILTERCORE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
