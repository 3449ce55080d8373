package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/jfmyers9/dimms/internal/config"
	"github.com/jfmyers9/dimms/internal/dispatch"
	"github.com/jfmyers9/dimms/internal/export"
	"github.com/jfmyers9/dimms/internal/gateway"
	"github.com/jfmyers9/dimms/internal/httpcache"
	"github.com/jfmyers9/dimms/internal/render"
	"github.com/jfmyers9/dimms/internal/session"
	"github.com/jfmyers9/dimms/pkg/discogs"
	"github.com/rs/zerolog"
)

// app is everything one process run needs to execute commands.
type app struct {
	logger     zerolog.Logger
	cache      *httpcache.Transport
	handlers   *dispatch.Handlers
	dispatcher *dispatch.Dispatcher
	console    *render.Console
}

// loadConfig loads configuration and builds the logger, honoring the
// persistent flag overrides.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	return cfg, setupLogger(cfg.LogFile, cfg.LogLevel), nil
}

// openCache opens the response cache, or returns nil when it is disabled.
func openCache(cfg *config.Config, logger zerolog.Logger) (*httpcache.Transport, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	cache, err := httpcache.Open(cfg.Cache.Path, cfg.Cache.TTL, http.DefaultTransport, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open response cache: %w", err)
	}
	return cache, nil
}

// newClient builds a Discogs client from cfg over an optional cache.
func newClient(cfg *config.Config, token string, cache *httpcache.Transport, logger zerolog.Logger) (*discogs.Client, error) {
	httpClient := &http.Client{Timeout: cfg.Discogs.Timeout}
	if cache != nil {
		httpClient.Transport = cache
	}

	return discogs.NewClient(discogs.Config{
		Token:      token,
		UserAgent:  cfg.Discogs.UserAgent,
		BaseURL:    cfg.Discogs.BaseURL,
		HTTPClient: httpClient,
		Limiter:    discogs.NewLimiter(cfg.Discogs.RateLimit, discogs.DefaultBurst),
		Logger:     gateway.LogAdapter{Logger: logger.With().Str("component", "discogs").Logger()},
	})
}

// newApp loads configuration, checks the token, and wires the session.
// A missing or rejected token is fatal.
func newApp(ctx context.Context, announce bool) (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}

	cache, err := openCache(cfg, logger)
	if err != nil {
		return nil, err
	}

	client, err := newClient(cfg, cfg.Discogs.Token, cache, logger)
	if err != nil {
		closeCache(cache, logger)
		return nil, fmt.Errorf("failed to create Discogs client: %w", err)
	}

	console := render.NewConsole(os.Stdout)
	gw := gateway.New(client, gateway.Options{PerPage: cfg.Discogs.PerPage}, logger)

	if !noVerify {
		id, err := gw.Identity(ctx)
		if err != nil {
			closeCache(cache, logger)
			if errors.Is(err, discogs.ErrUnauthorized) {
				return nil, fmt.Errorf("authentication failed, check your %s: %w", config.TokenEnv, err)
			}
			if errors.Is(err, discogs.ErrRateLimited) {
				return nil, fmt.Errorf("rate limited by Discogs, wait a minute and retry (or use --no-verify): %w", err)
			}
			return nil, fmt.Errorf("authentication failed: %w", err)
		}
		if announce {
			console.Info(fmt.Sprintf("Authenticated as %s", id.Username))
		}
	}

	store := session.New()
	exporter := export.New(cfg.OutputDir, logger)
	handlers := dispatch.NewHandlers(gw, store, exporter, logger)

	return &app{
		logger:     logger,
		cache:      cache,
		handlers:   handlers,
		dispatcher: dispatch.New(handlers, console, logger),
		console:    console,
	}, nil
}

// Close releases the response cache.
func (a *app) Close() {
	closeCache(a.cache, a.logger)
}

// report shows err to the user and marks it as reported.
func (a *app) report(err error) error {
	if err == nil {
		return nil
	}
	a.console.Error(err)
	return fmt.Errorf("%w: %w", errReported, err)
}

func closeCache(cache *httpcache.Transport, logger zerolog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close response cache")
	}
}
