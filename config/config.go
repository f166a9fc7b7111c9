package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"income-estimator/domain"
	"os"
	"strings"
	"time"
)

// PathEnv names the optional YAML config file
const PathEnv = "ESTIMATOR_CONFIG_PATH"

// Config for the estimator server
type Config struct {
	RateApi  RateApi `yaml:"rate_api"`
	HTTPAddr string  `yaml:"http_addr" env:"HTTP_ADDR" env-default:":8080"`
	LogLevel string  `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// RateApi exchange rate provider settings
type RateApi struct {
	URL           string        `yaml:"url" env:"RATE_API_URL" env-default:"https://v6.exchangerate-api.com/v6"`
	Key           string        `yaml:"key" env:"RATE_API_KEY"`
	BaseCurrency  string        `yaml:"base_currency" env:"RATE_BASE_CURRENCY" env-default:"USD"`
	LocalCurrency string        `yaml:"local_currency" env:"RATE_LOCAL_CURRENCY" env-default:"RSD"`
	Timeout       time.Duration `yaml:"timeout" env:"RATE_FETCH_TIMEOUT" env-default:"10s"`
}

// Base currency code, upper cased
func (r RateApi) Base() domain.Currency {
	return domain.Currency(strings.ToUpper(strings.TrimSpace(r.BaseCurrency)))
}

// Local currency code, upper cased
func (r RateApi) Local() domain.Currency {
	return domain.Currency(strings.ToUpper(strings.TrimSpace(r.LocalCurrency)))
}

// Load reads a .env file if present, then the YAML file named by ESTIMATOR_CONFIG_PATH
// if set, otherwise the environment alone.
func Load() (Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	var cfg Config
	if path := strings.TrimSpace(os.Getenv(PathEnv)); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config file %v: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.RateApi.Base()) != 3 || len(c.RateApi.Local()) != 3 {
		return fmt.Errorf("currency codes must be 3 characters: base %q, local %q", c.RateApi.BaseCurrency, c.RateApi.LocalCurrency)
	}
	if c.RateApi.Timeout <= 0 {
		return fmt.Errorf("rate fetch timeout must be positive: %v", c.RateApi.Timeout)
	}
	return nil
}
