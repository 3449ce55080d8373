package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// TokenEnv is the environment variable holding the Discogs token.
const TokenEnv = "DISCOGS_TOKEN"

// ErrMissingToken is returned by RequireToken when no token is configured.
var ErrMissingToken = errors.New("DISCOGS_TOKEN is not set: export DISCOGS_TOKEN=<your token> (https://www.discogs.com/settings/developers) or run 'dimms auth'")

// Config holds application configuration
type Config struct {
	// Discogs API settings
	Discogs DiscogsConfig

	// Response cache settings
	Cache CacheConfig

	// Directory CSV exports are written to
	// Default: current directory
	OutputDir string

	// Log level (trace, debug, info, warn, error)
	LogLevel string `validate:"oneof=trace debug info warn error"`

	// Log file path (empty = stderr)
	LogFile string
}

// DiscogsConfig holds Discogs specific configuration
type DiscogsConfig struct {
	Token     string
	BaseURL   string        `validate:"required,url"`
	UserAgent string        `validate:"required"`
	RateLimit int           `validate:"gte=0"` // requests per minute, 0 = unlimited
	PerPage   int           `validate:"gte=0,lte=100"`
	Timeout   time.Duration `validate:"gt=0"`
}

// CacheConfig holds HTTP response cache configuration
type CacheConfig struct {
	Enabled bool
	Path    string
	TTL     time.Duration `validate:"gte=0"`
}

var validate = validator.New()

// Load reads configuration from .env, the config file and environment
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetDefault("discogs.base_url", "https://api.discogs.com")
	v.SetDefault("discogs.user_agent", "DiMMS-CLI/1.0")
	v.SetDefault("discogs.rate_limit", 60)
	v.SetDefault("discogs.per_page", 0)
	v.SetDefault("discogs.timeout", "15s")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", filepath.Join(configDir, "http_cache.db"))
	v.SetDefault("cache.ttl", "30m")
	v.SetDefault("output_dir", ".")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// DIMMS_DISCOGS_RATE_LIMIT, DIMMS_CACHE_TTL, ...
	v.SetEnvPrefix("DIMMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("discogs.token", "DIMMS_DISCOGS_TOKEN", TokenEnv)

	cfg := &Config{
		Discogs: DiscogsConfig{
			Token:     strings.TrimSpace(v.GetString("discogs.token")),
			BaseURL:   v.GetString("discogs.base_url"),
			UserAgent: v.GetString("discogs.user_agent"),
			RateLimit: v.GetInt("discogs.rate_limit"),
			PerPage:   v.GetInt("discogs.per_page"),
			Timeout:   v.GetDuration("discogs.timeout"),
		},
		Cache: CacheConfig{
			Enabled: v.GetBool("cache.enabled"),
			Path:    v.GetString("cache.path"),
			TTL:     v.GetDuration("cache.ttl"),
		},
		OutputDir: v.GetString("output_dir"),
		LogLevel:  strings.ToLower(v.GetString("log_level")),
		LogFile:   v.GetString("log_file"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", fe.Namespace(), friendlyMessage(fe)))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// RequireToken returns ErrMissingToken when no Discogs token is set.
func (c *Config) RequireToken() error {
	if c.Discogs.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "dimms")

	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	configFile := filepath.Join(getConfigDir(), "config.yaml")

	v.Set("discogs.token", c.Discogs.Token)
	v.Set("discogs.base_url", c.Discogs.BaseURL)
	v.Set("discogs.user_agent", c.Discogs.UserAgent)
	v.Set("discogs.rate_limit", c.Discogs.RateLimit)
	v.Set("discogs.per_page", c.Discogs.PerPage)
	v.Set("discogs.timeout", c.Discogs.Timeout.String())
	v.Set("cache.enabled", c.Cache.Enabled)
	v.Set("cache.path", c.Cache.Path)
	v.Set("cache.ttl", c.Cache.TTL.String())
	v.Set("output_dir", c.OutputDir)
	v.Set("log_level", c.LogLevel)
	v.Set("log_file", c.LogFile)

	if err := v.WriteConfigAs(configFile); err != nil {
		return err
	}

	// The file holds a credential
	return os.Chmod(configFile, 0600)
}
