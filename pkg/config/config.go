package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	Payments PaymentsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Payments.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VELOPAY_APP_ENV" required:"true"`
	Port         string `envconfig:"VELOPAY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VELOPAY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VELOPAY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type PaymentsConfig struct {
	// DefaultAmount backfills intents created without an amount. The mock
	// gateway contract pins this to 100.0.
	DefaultAmount   string `envconfig:"VELOPAY_PAYMENTS_DEFAULT_AMOUNT" default:"100.0"`
	DefaultCurrency string `envconfig:"VELOPAY_PAYMENTS_DEFAULT_CURRENCY" default:"INR"`
	Provider        string `envconfig:"VELOPAY_PAYMENTS_PROVIDER" default:"mockpay"`
}

func (p PaymentsConfig) validate() error {
	if _, err := decimal.NewFromString(p.DefaultAmount); err != nil {
		return fmt.Errorf("parsing %s: %w", EnvDefaultAmount, err)
	}
	if strings.TrimSpace(p.DefaultCurrency) == "" {
		return fmt.Errorf("%s must not be blank", EnvDefaultCurrency)
	}
	if strings.TrimSpace(p.Provider) == "" {
		return fmt.Errorf("%s must not be blank", EnvProvider)
	}
	return nil
}

// DefaultAmountDecimal returns the configured default amount as a decimal.
// validate guarantees the value parses.
func (p PaymentsConfig) DefaultAmountDecimal() decimal.Decimal {
	amount, _ := decimal.NewFromString(p.DefaultAmount)
	return amount
}
