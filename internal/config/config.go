// Package config loads application configuration from defaults, an optional
// config file, a .env file and GITFINDER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GITFINDER"

// Config holds application configuration.
type Config struct {
	APIURL       string        `mapstructure:"api_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RepoPageSize int           `mapstructure:"repo_page_size"`
	EventLimit   int           `mapstructure:"event_limit"`
	IssueLimit   int           `mapstructure:"issue_limit"`
	TopLanguages int           `mapstructure:"top_languages"`
	Preset       string        `mapstructure:"preset"`
	Theme        string        `mapstructure:"theme"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// File is an explicit config file. Empty searches for gitfinder.yaml in
	// the working directory and $HOME/.config/gitfinder.
	File string
	// EnvFile is a dotenv file loaded before reading the environment.
	EnvFile string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "https://api.github.com/")
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("repo_page_size", 100)
	v.SetDefault("event_limit", 10)
	v.SetDefault("issue_limit", 5)
	v.SetDefault("top_languages", 5)
	v.SetDefault("preset", "full")
	v.SetDefault("theme", "emerald")
}

// Load reads configuration into a new viper instance and validates it.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// A missing .env file is normal.
	if err := godotenv.Load(envFile); err != nil && opts.EnvFile != "" {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("gitfinder")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gitfinder")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RepoPageSize < 1 || c.RepoPageSize > 100 {
		return fmt.Errorf("repo_page_size must be between 1 and 100, got %d", c.RepoPageSize)
	}
	if c.EventLimit < 1 || c.EventLimit > 10 {
		return fmt.Errorf("event_limit must be between 1 and 10, got %d", c.EventLimit)
	}
	if c.IssueLimit < 1 || c.IssueLimit > 5 {
		return fmt.Errorf("issue_limit must be between 1 and 5, got %d", c.IssueLimit)
	}
	if c.TopLanguages < 1 {
		return fmt.Errorf("top_languages must be positive, got %d", c.TopLanguages)
	}
	return nil
}
