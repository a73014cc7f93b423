package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel      log.Level
	Currency      string
	CurrencyCode  string
	SampleHistory bool
	Theme         string
	MetricsAddr   string
}

var themes = map[string]bool{
	"charm":      true,
	"dracula":    true,
	"base16":     true,
	"catppuccin": true,
}

func Default() Config {
	return Config{
		LogLevel:      log.InfoLevel,
		Currency:      "FCFA",
		CurrencyCode:  "XOF",
		SampleHistory: true,
		Theme:         "charm",
	}
}

// LoadDotEnv reads the given .env files (or ./.env when none are given).
// A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// FromEnv builds a Config from defaults overridden by FRAUD_* variables.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("FRAUD_LOG_LEVEL"); ok && v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("FRAUD_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}
	if v, ok := lookup("FRAUD_CURRENCY"); ok && v != "" {
		cfg.Currency = v
	}
	if v, ok := lookup("FRAUD_CURRENCY_CODE"); ok && v != "" {
		cfg.CurrencyCode = strings.ToUpper(v)
	}
	if v, ok := lookup("FRAUD_SAMPLE_HISTORY"); ok && v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("FRAUD_SAMPLE_HISTORY: %w", err)
		}
		cfg.SampleHistory = seed
	}
	if v, ok := lookup("FRAUD_THEME"); ok && v != "" {
		cfg.Theme = strings.ToLower(v)
	}
	if v, ok := lookup("FRAUD_METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []string
	if strings.TrimSpace(c.Currency) == "" {
		errs = append(errs, "currency must not be empty")
	}
	if len(c.CurrencyCode) != 3 {
		errs = append(errs, fmt.Sprintf("currency code %q must be a 3-letter ISO 4217 code", c.CurrencyCode))
	}
	if !themes[c.Theme] {
		errs = append(errs, fmt.Sprintf("unknown theme %q", c.Theme))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
