package config

const (
	EnvPrefix = "mg"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)
