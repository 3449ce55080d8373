package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points the config directory at a temp HOME and clears the
// environment variables Load reads.
func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range []string{
		TokenEnv,
		"DIMMS_DISCOGS_TOKEN",
		"DIMMS_DISCOGS_RATE_LIMIT",
		"DIMMS_LOG_LEVEL",
		"DIMMS_CACHE_TTL",
	} {
		t.Setenv(name, "")
	}
	return filepath.Join(home, ".config", "dimms")
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Discogs.BaseURL != "https://api.discogs.com" {
		t.Errorf("unexpected base URL %q", cfg.Discogs.BaseURL)
	}
	if cfg.Discogs.UserAgent != "DiMMS-CLI/1.0" {
		t.Errorf("unexpected user agent %q", cfg.Discogs.UserAgent)
	}
	if cfg.Discogs.RateLimit != 60 {
		t.Errorf("expected rate limit 60, got %d", cfg.Discogs.RateLimit)
	}
	if cfg.Discogs.Timeout != 15*time.Second {
		t.Errorf("expected timeout 15s, got %v", cfg.Discogs.Timeout)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("unexpected cache config %+v", cfg.Cache)
	}
	if cfg.Cache.Path != filepath.Join(dir, "http_cache.db") {
		t.Errorf("unexpected cache path %q", cfg.Cache.Path)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected log level warn, got %q", cfg.LogLevel)
	}
}

func TestRequireToken(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !errors.Is(cfg.RequireToken(), ErrMissingToken) {
		t.Error("expected ErrMissingToken without a token")
	}
	if !strings.Contains(ErrMissingToken.Error(), TokenEnv) {
		t.Error("missing token message should name the variable")
	}
}

func TestLoadTokenFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv(TokenEnv, "  secret  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Discogs.Token != "secret" {
		t.Errorf("expected token from %s, got %q", TokenEnv, cfg.Discogs.Token)
	}
	if err := cfg.RequireToken(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadPrefixedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("DIMMS_DISCOGS_RATE_LIMIT", "10")
	t.Setenv("DIMMS_CACHE_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Discogs.RateLimit != 10 {
		t.Errorf("expected rate limit 10, got %d", cfg.Discogs.RateLimit)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("expected ttl 5m, got %v", cfg.Cache.TTL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	data := "discogs:\n  per_page: 50\n  token: from-file\nlog_level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Discogs.PerPage != 50 {
		t.Errorf("expected per_page 50, got %d", cfg.Discogs.PerPage)
	}
	if cfg.Discogs.Token != "from-file" {
		t.Errorf("expected token from file, got %q", cfg.Discogs.Token)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestLoadInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("DIMMS_LOG_LEVEL", "loud")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "LogLevel") {
		t.Errorf("expected error to name LogLevel, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Discogs: DiscogsConfig{
			BaseURL:   "https://api.discogs.com",
			UserAgent: "test",
			Timeout:   time.Second,
		},
		LogLevel: "info",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad url", mutate: func(c *Config) { c.Discogs.BaseURL = "not a url" }, wantErr: "BaseURL"},
		{name: "no user agent", mutate: func(c *Config) { c.Discogs.UserAgent = "" }, wantErr: "UserAgent"},
		{name: "negative rate", mutate: func(c *Config) { c.Discogs.RateLimit = -1 }, wantErr: "RateLimit"},
		{name: "page too big", mutate: func(c *Config) { c.Discogs.PerPage = 500 }, wantErr: "PerPage"},
		{name: "zero timeout", mutate: func(c *Config) { c.Discogs.Timeout = 0 }, wantErr: "Timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.Discogs.Token = "saved-token"
	cfg.Discogs.PerPage = 25

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Discogs.Token != "saved-token" || loaded.Discogs.PerPage != 25 {
		t.Errorf("unexpected reloaded config %+v", loaded.Discogs)
	}
}
