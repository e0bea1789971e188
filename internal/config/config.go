package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName             string        `mapstructure:"app_name"`
	Env                 string        `mapstructure:"app_env"`
	LogLevel            string        `mapstructure:"log_level"`
	OutputPath          string        `mapstructure:"output_path"`
	PublishersFile      string        `mapstructure:"publishers_file"`
	UserAgent           string        `mapstructure:"user_agent"`
	FetchTimeoutSeconds int64         `mapstructure:"fetch_timeout_seconds"`
	SourceDelayMs       int64         `mapstructure:"source_delay_ms"`
	FetchTimeout        time.Duration `mapstructure:"-"`
	SourceDelay         time.Duration `mapstructure:"-"`
}

const defaultUserAgent = "Mozilla/5.0 (compatible; KannurNewsDigest/1.0; +https://travelkannur.in)"

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "kannur-news-digest")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("output_path", "news.html")
	v.SetDefault("publishers_file", "")
	v.SetDefault("user_agent", defaultUserAgent)
	v.SetDefault("fetch_timeout_seconds", 15)
	v.SetDefault("source_delay_ms", 0)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	if c.OutputPath == "" {
		return fmt.Errorf("invalid output_path (must not be empty)")
	}
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid fetch_timeout_seconds (must be positive seconds)")
	}
	if c.SourceDelayMs < 0 {
		return fmt.Errorf("invalid source_delay_ms (must not be negative)")
	}
	c.FetchTimeout = time.Duration(c.FetchTimeoutSeconds) * time.Second
	c.SourceDelay = time.Duration(c.SourceDelayMs) * time.Millisecond
	return nil
}
