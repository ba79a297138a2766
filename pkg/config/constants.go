package config

const (
	// EnvPrefix scopes every environment variable the service reads.
	EnvPrefix = "VELOPAY"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv          = "VELOPAY_APP_ENV"
	EnvPort            = "VELOPAY_APP_PORT"
	EnvLogLevel        = "VELOPAY_LOG_LEVEL"
	EnvDefaultAmount   = "VELOPAY_PAYMENTS_DEFAULT_AMOUNT"
	EnvDefaultCurrency = "VELOPAY_PAYMENTS_DEFAULT_CURRENCY"
	EnvProvider        = "VELOPAY_PAYMENTS_PROVIDER"
)
