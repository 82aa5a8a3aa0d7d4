// Package config loads engine configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/warp/forecast-engine/forecast"
)

// Config defines server and forecast configuration.
type Config struct {
	Forecast ForecastConfig `yaml:"forecast"`
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
}

// ForecastConfig drives the calculators: the reference month all benefit
// windows anchor on, the salary inflator, and the yearly planning
// assumptions used by the configured-average simulation.
type ForecastConfig struct {
	ReferenceYear      int    `yaml:"reference_year"`
	ReferenceMonth     int    `yaml:"reference_month"`
	Inflator           string `yaml:"inflator"`
	YearlyWorkdays     int    `yaml:"yearly_workdays"`
	YearlySickDays     int    `yaml:"yearly_sick_days"`
	YearlyTrainingDays int    `yaml:"yearly_training_days"`
	Ignore             []int  `yaml:"ignore"`
	OutputDir          string `yaml:"output_dir"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Environment variables win over the file.
func Load() (Config, error) {
	now := time.Now()
	cfg := Config{
		Forecast: ForecastConfig{
			ReferenceYear:      now.Year(),
			ReferenceMonth:     int(now.Month()),
			Inflator:           "1.0",
			YearlyWorkdays:     217,
			YearlySickDays:     5,
			YearlyTrainingDays: 5,
			OutputDir:          "output",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "forecast.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("FORECAST_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if year := os.Getenv("FORECAST_REFERENCE_YEAR"); year != "" {
		v, err := strconv.Atoi(year)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FORECAST_REFERENCE_YEAR: %w", err)
		}
		cfg.Forecast.ReferenceYear = v
	}
	if month := os.Getenv("FORECAST_REFERENCE_MONTH"); month != "" {
		v, err := strconv.Atoi(month)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FORECAST_REFERENCE_MONTH: %w", err)
		}
		cfg.Forecast.ReferenceMonth = v
	}
	if inflator := os.Getenv("FORECAST_INFLATOR"); inflator != "" {
		cfg.Forecast.Inflator = inflator
	}
	if host := os.Getenv("FORECAST_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("FORECAST_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FORECAST_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("FORECAST_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("FORECAST_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Forecast.ReferenceMonth < 1 || c.Forecast.ReferenceMonth > 12 {
		return fmt.Errorf("reference_month %d out of range 1..12", c.Forecast.ReferenceMonth)
	}
	if c.Forecast.YearlyWorkdays <= 0 {
		return fmt.Errorf("yearly_workdays must be positive, got %d", c.Forecast.YearlyWorkdays)
	}
	if _, err := decimal.NewFromString(c.Forecast.Inflator); err != nil {
		return fmt.Errorf("invalid inflator %q: %w", c.Forecast.Inflator, err)
	}
	return nil
}

// Reference returns the configured reference month.
func (c Config) Reference() forecast.RefMonth {
	return forecast.RefMonth{
		Year:  c.Forecast.ReferenceYear,
		Month: time.Month(c.Forecast.ReferenceMonth),
	}
}

// InflatorValue returns the salary inflator as a decimal. Validity is
// checked at load time.
func (c Config) InflatorValue() decimal.Decimal {
	v, _ := decimal.NewFromString(c.Forecast.Inflator)
	return v
}

// IgnoreList returns the configured worker ids to drop from employee
// overviews.
func (c Config) IgnoreList() []forecast.WorkerID {
	ids := make([]forecast.WorkerID, 0, len(c.Forecast.Ignore))
	for _, id := range c.Forecast.Ignore {
		ids = append(ids, forecast.WorkerID(id))
	}
	return ids
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
