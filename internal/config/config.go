package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	AWS struct {
		Region   string `yaml:"region"`
		QueueURL string `yaml:"queue_url"`
		TopicARN string `yaml:"topic_arn"`
		SecretID string `yaml:"secret_id"`
	} `yaml:"aws"`
	Polygon struct {
		BaseURL          string `yaml:"base_url"`
		PageDelaySeconds int    `yaml:"page_delay_seconds"`
	} `yaml:"polygon"`
	Alpaca struct {
		BaseURL            string `yaml:"base_url"`
		Timeframe          string `yaml:"timeframe"`
		WindowBusinessDays int    `yaml:"window_business_days"`
		MarketTimezone     string `yaml:"market_timezone"`
	} `yaml:"alpaca"`
	Run struct {
		Mode            string `yaml:"mode"`
		CooldownSeconds int    `yaml:"cooldown_seconds"`
		Cron            string `yaml:"cron"`
	} `yaml:"run"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.AWS.Region = v
	}
	if v := os.Getenv("QUEUE_URL"); v != "" {
		cfg.AWS.QueueURL = v
	}
	if v := os.Getenv("TOPIC_ARN"); v != "" {
		cfg.AWS.TopicARN = v
	}
	if v := os.Getenv("SECRET_ID"); v != "" {
		cfg.AWS.SecretID = v
	}
	if v := os.Getenv("POLYGON_BASE_URL"); v != "" {
		cfg.Polygon.BaseURL = v
	}
	if v := os.Getenv("ALPACA_BASE_URL"); v != "" {
		cfg.Alpaca.BaseURL = v
	}
	if v := os.Getenv("RUN_MODE"); v != "" {
		cfg.Run.Mode = v
	}
	if v := os.Getenv("COOLDOWN_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Run.CooldownSeconds = n
		}
	}
	if v := os.Getenv("RUN_CRON"); v != "" {
		cfg.Run.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = "us-west-2"
	}
	if cfg.AWS.SecretID == "" {
		cfg.AWS.SecretID = "tokens"
	}
	if cfg.Polygon.BaseURL == "" {
		cfg.Polygon.BaseURL = "https://api.polygon.io"
	}
	if cfg.Polygon.PageDelaySeconds == 0 {
		cfg.Polygon.PageDelaySeconds = 12
	}
	if cfg.Alpaca.BaseURL == "" {
		cfg.Alpaca.BaseURL = "https://data.alpaca.markets"
	}
	if cfg.Alpaca.Timeframe == "" {
		cfg.Alpaca.Timeframe = "1Hour"
	}
	if cfg.Alpaca.WindowBusinessDays == 0 {
		cfg.Alpaca.WindowBusinessDays = 4
	}
	if cfg.Alpaca.MarketTimezone == "" {
		cfg.Alpaca.MarketTimezone = "America/New_York"
	}
	if cfg.Run.Mode == "" {
		cfg.Run.Mode = "drain"
	}
	if cfg.Run.CooldownSeconds == 0 {
		cfg.Run.CooldownSeconds = 60
	}

	return cfg, nil
}

// Validate checks that all required fields are set and coherent.
func (c *Config) Validate() error {
	if c.AWS.QueueURL == "" {
		return fmt.Errorf("aws.queue_url is required")
	}
	if c.AWS.TopicARN == "" {
		return fmt.Errorf("aws.topic_arn is required")
	}
	if c.AWS.SecretID == "" {
		return fmt.Errorf("aws.secret_id is required")
	}
	if c.Run.Mode != "drain" && c.Run.Mode != "cron" {
		return fmt.Errorf("run.mode must be \"drain\" or \"cron\", got %q", c.Run.Mode)
	}
	if c.Run.Mode == "cron" && c.Run.Cron == "" {
		return fmt.Errorf("run.cron is required when run.mode is \"cron\"")
	}
	if c.Alpaca.WindowBusinessDays < 1 {
		return fmt.Errorf("alpaca.window_business_days must be positive")
	}
	if _, err := time.LoadLocation(c.Alpaca.MarketTimezone); err != nil {
		return fmt.Errorf("alpaca.market_timezone: %w", err)
	}
	return nil
}

// PageDelay returns the inter-page delay for the dividends API.
func (c *Config) PageDelay() time.Duration {
	return time.Duration(c.Polygon.PageDelaySeconds) * time.Second
}

// CooldownDuration returns the pause between processed jobs.
func (c *Config) CooldownDuration() time.Duration {
	return time.Duration(c.Run.CooldownSeconds) * time.Second
}
