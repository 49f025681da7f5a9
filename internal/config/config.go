package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource DataSourceConfig `yaml:"data_source" toml:"data_source"`
	Report     ReportConfig     `yaml:"report" toml:"report"`
	Telegram   TelegramConfig   `yaml:"telegram" toml:"telegram"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
	Proxy      string           `yaml:"proxy" toml:"proxy" validate:"omitempty,url"`
}

// DataSourceConfig selects and tunes the market data provider.
type DataSourceConfig struct {
	Provider        string `yaml:"provider" toml:"provider" validate:"oneof=yahoo rest mock"`
	BaseURL         string `yaml:"base_url" toml:"base_url" validate:"omitempty,url"`
	APIKey          string `yaml:"api_key" toml:"api_key"`
	BenchmarkSymbol string `yaml:"benchmark_symbol" toml:"benchmark_symbol" validate:"required"`
	Timeout         string `yaml:"timeout" toml:"timeout"`
	RateLimit       int    `yaml:"rate_limit" toml:"rate_limit" validate:"gte=0"`
}

// GetTimeout parses the per-fetch timeout, falling back to 15s.
func (c *DataSourceConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// ReportConfig controls presentation. A MovingAverageWindow of -1 disables the overlay.
type ReportConfig struct {
	StatsStyle          string `yaml:"stats_style" toml:"stats_style" validate:"oneof=table compact"`
	MovingAverageWindow int    `yaml:"moving_average_window" toml:"moving_average_window" validate:"gte=-1,lte=250"`
	ChartPath           string `yaml:"chart_path" toml:"chart_path"`
}

// TelegramConfig holds bot credentials. Both are only required for bot mode and -telegram.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token" toml:"bot_token"`
	ChatID   string `yaml:"chat_id" toml:"chat_id"`
}

// Enabled reports whether a bot token and chat are configured.
func (c TelegramConfig) Enabled() bool { return c.BotToken != "" && c.ChatID != "" }

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level" validate:"oneof=trace debug info warn error"`
	File  string `yaml:"file" toml:"file"`
}

// Load reads config from a YAML or TOML file (by extension), then a .env file if
// present, then applies environment variable overrides and defaults.
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			err = toml.Unmarshal(data, cfg)
		default:
			err = yaml.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	set := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set("PRICESCOPE_PROVIDER", &cfg.DataSource.Provider)
	set("PRICESCOPE_BASE_URL", &cfg.DataSource.BaseURL)
	set("PRICESCOPE_API_KEY", &cfg.DataSource.APIKey)
	set("PRICESCOPE_BENCHMARK", &cfg.DataSource.BenchmarkSymbol)
	set("PRICESCOPE_TIMEOUT", &cfg.DataSource.Timeout)
	set("TELEGRAM_BOT_TOKEN", &cfg.Telegram.BotToken)
	set("TELEGRAM_CHAT_ID", &cfg.Telegram.ChatID)
	set("LOG_LEVEL", &cfg.Logging.Level)
	set("LOG_FILE", &cfg.Logging.File)
	set("HTTPS_PROXY", &cfg.Proxy)

	if v := os.Getenv("PRICESCOPE_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.RateLimit = n
		}
	}
}

func applyDefaults(cfg *Config) {
	cfg.DataSource.Provider = strings.ToLower(cfg.DataSource.Provider)
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.BenchmarkSymbol == "" {
		cfg.DataSource.BenchmarkSymbol = "^GSPC"
	}
	if cfg.DataSource.Timeout == "" {
		cfg.DataSource.Timeout = "15s"
	}
	if cfg.DataSource.RateLimit == 0 {
		cfg.DataSource.RateLimit = 5
	}
	cfg.Report.StatsStyle = strings.ToLower(cfg.Report.StatsStyle)
	if cfg.Report.StatsStyle == "" {
		cfg.Report.StatsStyle = "table"
	}
	if cfg.Report.MovingAverageWindow == 0 {
		cfg.Report.MovingAverageWindow = 20
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if _, err := time.ParseDuration(c.DataSource.Timeout); err != nil {
		return fmt.Errorf("data_source.timeout: %w", err)
	}
	if c.DataSource.Provider == "rest" && c.DataSource.BaseURL == "" {
		return errors.New("data_source.base_url is required for the rest provider")
	}
	return nil
}

// ValidateTelegram checks the settings needed to talk to Telegram.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
