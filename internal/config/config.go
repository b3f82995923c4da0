package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	API     APIConfig     `envPrefix:"COMPANION_API_"`
	DND5E   DND5EConfig   `envPrefix:"DND5E_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Discord DiscordConfig `envPrefix:"DISCORD_"`
	Logging LoggingConfig `envPrefix:"LOG_"`

	// Profile names the persisted session; the bot and the CLI can share one
	Profile string `env:"COMPANION_PROFILE" envDefault:"default"`

	// TokenDB is a SQLite file for persisted logins, used when no Redis URL
	// is set. The CLI falls back to a file in the user config directory.
	TokenDB string `env:"COMPANION_TOKEN_DB"`
}

// APIConfig holds the companion REST API configuration
type APIConfig struct {
	BaseURL string        `env:"URL" envDefault:"http://localhost:5000/api"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	BaseURL string        `env:"API_URL" envDefault:"https://www.dnd5eapi.co/api"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}

// RedisConfig holds Redis-specific configuration.
// An empty URL selects the in-memory token store.
type RedisConfig struct {
	URL      string        `env:"URL"`
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"TOKEN"`
	AppID   string `env:"APP_ID"`
	GuildID string `env:"GUILD_ID"` // Optional: for guild-specific commands

	// OwnerIDs may use the account-bound commands. When empty, members with
	// Manage Server may use them instead.
	OwnerIDs []string `env:"OWNER_IDS" envSeparator:","`
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `env:"LEVEL" envDefault:"info"`
	// Format is the log output format: "json" or "console".
	Format string `env:"FORMAT" envDefault:"console"`
}

// Load loads configuration from environment variables and validates it.
// Discord settings are only checked by ValidateDiscord.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, dnderr.Wrap(err, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every setting except the Discord ones
func (c *Config) Validate() error {
	var errs []string

	if err := validateBaseURL("COMPANION_API_URL", c.API.BaseURL); err != nil {
		errs = append(errs, err.Error())
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, "COMPANION_API_TIMEOUT must be positive")
	}
	if err := validateBaseURL("DND5E_API_URL", c.DND5E.BaseURL); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Redis.URL != "" && c.Redis.TokenTTL < 0 {
		errs = append(errs, "REDIS_TOKEN_TTL must not be negative")
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if strings.TrimSpace(c.Profile) == "" {
		errs = append(errs, "COMPANION_PROFILE must not be empty")
	}

	if len(errs) > 0 {
		return dnderr.Validationf("configuration validation failed: %s", strings.Join(errs, "; ")).
			WithMeta("violations", len(errs))
	}
	return nil
}

// ValidateDiscord checks the settings the bot needs to connect
func (c *Config) ValidateDiscord() error {
	if c.Discord.Token == "" {
		return dnderr.Validation("DISCORD_TOKEN is required").WithMeta("field", "DISCORD_TOKEN")
	}
	if c.Discord.AppID == "" {
		return dnderr.Validation("DISCORD_APP_ID is required").WithMeta("field", "DISCORD_APP_ID")
	}
	return nil
}

func validateBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of [json, console], got %q", l.Format)
	}
	return nil
}
