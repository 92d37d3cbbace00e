// Package config loads service configuration from defaults, an optional
// YAML file, a .env file and PITCHSIDE_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pitchside/live-engine/internal/events"
)

// EnvPrefix prefixes every environment override, e.g. PITCHSIDE_SERVER_PORT.
const EnvPrefix = "PITCHSIDE"

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig     `mapstructure:"server"`
	Database      DatabaseConfig   `mapstructure:"database"`
	Redis         RedisConfig      `mapstructure:"redis"`
	Simulator     SimulatorConfig  `mapstructure:"simulator"`
	Events        EventsConfig     `mapstructure:"events"`
	Revalidate    RevalidateConfig `mapstructure:"revalidate"`
	Scrape        ScrapeConfig     `mapstructure:"scrape"`
	Telegram      TelegramConfig   `mapstructure:"telegram"`
	Logging       LoggingConfig    `mapstructure:"logging"`
	Notifications events.Settings  `mapstructure:"notifications"`
}

// ServerConfig holds HTTP listener configuration. BaseURL, when set, is
// where completion revalidations are POSTed; empty means in-process.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	BaseURL         string        `mapstructure:"base_url"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig selects PostgreSQL for reference data. Empty URL uses the
// built-in seed.
type DatabaseConfig struct {
	URL  string `mapstructure:"url"`
	Seed bool   `mapstructure:"seed"`
}

// RedisConfig enables the reference-data cache.
type RedisConfig struct {
	URL string        `mapstructure:"url"`
	TTL time.Duration `mapstructure:"ttl"`
}

// SimulatorConfig tunes match progression.
type SimulatorConfig struct {
	Interval          time.Duration `mapstructure:"interval"`
	UpdateProbability float64       `mapstructure:"update_probability"`
	SixProbability    float64       `mapstructure:"six_probability"`
}

// EventsConfig tunes the event poller. SourceURL is the matches endpoint
// the watch command polls.
type EventsConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	HistorySize  int           `mapstructure:"history_size"`
	SourceURL    string        `mapstructure:"source_url"`
}

// RevalidateConfig controls completion revalidation.
type RevalidateConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Tag     string        `mapstructure:"tag"`
}

// ScrapeConfig points the live-score scrapers at their pages.
type ScrapeConfig struct {
	ESPNURL string        `mapstructure:"espn_url"`
	NDTVURL string        `mapstructure:"ndtv_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	BotToken   string        `mapstructure:"bot_token"`
	ChatID     string        `mapstructure:"chat_id"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration. path may be empty, in which case only
// defaults, .env and the environment are consulted. A missing .env file is
// not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("database.url", "")
	v.SetDefault("database.seed", true)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.ttl", "30s")

	v.SetDefault("simulator.interval", "10s")
	v.SetDefault("simulator.update_probability", 0.7)
	v.SetDefault("simulator.six_probability", 0.3)

	v.SetDefault("events.poll_interval", "10s")
	v.SetDefault("events.history_size", 50)
	v.SetDefault("events.source_url", "http://localhost:8080/api/matches")

	v.SetDefault("revalidate.timeout", "3s")
	v.SetDefault("revalidate.tag", "points-table")

	v.SetDefault("scrape.espn_url", "https://www.espncricinfo.com/live-cricket-score")
	v.SetDefault("scrape.ndtv_url", "https://sports.ndtv.com/cricket/live-scores")
	v.SetDefault("scrape.timeout", "30s")

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay", "1s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("notifications.enabled", true)
	v.SetDefault("notifications.wickets", true)
	v.SetDefault("notifications.boundaries", true)
	v.SetDefault("notifications.milestones", true)
	v.SetDefault("notifications.match_updates", true)
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive")
	}

	if c.Simulator.Interval <= 0 {
		return fmt.Errorf("simulator.interval must be positive")
	}
	if c.Simulator.UpdateProbability < 0 || c.Simulator.UpdateProbability > 1 {
		return fmt.Errorf("simulator.update_probability must be between 0.0 and 1.0")
	}
	if c.Simulator.SixProbability < 0 || c.Simulator.SixProbability > 1 {
		return fmt.Errorf("simulator.six_probability must be between 0.0 and 1.0")
	}

	if c.Events.PollInterval <= 0 {
		return fmt.Errorf("events.poll_interval must be positive")
	}
	if c.Events.HistorySize < 1 {
		return fmt.Errorf("events.history_size must be at least 1")
	}

	if c.Revalidate.Timeout <= 0 {
		return fmt.Errorf("revalidate.timeout must be positive")
	}
	if c.Revalidate.Tag == "" {
		return fmt.Errorf("revalidate.tag is required")
	}

	if c.Redis.URL != "" && c.Redis.TTL <= 0 {
		return fmt.Errorf("redis.ttl must be positive when redis is enabled")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// NewLogger builds the process logger described by c.
func (c LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
