package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SKUMETRICS"

	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

type Config struct {
	App       AppConfig
	Analytics AnalyticsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Analytics.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SKUMETRICS_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"SKUMETRICS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SKUMETRICS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type AnalyticsConfig struct {
	// MovingAverageWindow is the trailing window, in days, used for the
	// daily moving averages. The first window-1 rows average over the
	// available prefix.
	MovingAverageWindow int `envconfig:"SKUMETRICS_MOVING_AVERAGE_WINDOW" default:"7"`
	// OutlierStddevMultiplier scales the standard deviation added to the
	// mean refund rate when flagging outliers.
	OutlierStddevMultiplier float64 `envconfig:"SKUMETRICS_OUTLIER_STDDEV_MULTIPLIER" default:"1.0"`
}

func (a AnalyticsConfig) validate() error {
	if a.MovingAverageWindow < 1 {
		return fmt.Errorf("moving average window must be >= 1, got %d", a.MovingAverageWindow)
	}
	if a.OutlierStddevMultiplier <= 0 {
		return fmt.Errorf("outlier stddev multiplier must be positive, got %f", a.OutlierStddevMultiplier)
	}
	return nil
}
