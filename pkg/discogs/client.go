package discogs

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Config holds client configuration.
type Config struct {
	Token      string        // Required: Discogs personal access token
	UserAgent  string        // Optional: User-Agent header (defaults to DefaultUserAgent)
	HTTPClient *http.Client  // Optional: HTTP client (its Transport is wrapped for auth)
	BaseURL    string        // Optional: Base URL for API (defaults to Discogs API, used for testing)
	Limiter    *rate.Limiter // Optional: Outbound rate limiter (defaults to DefaultRateLimit)
	Logger     Logger        // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Discogs API operations.
type Client struct {
	userAgent  string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     Logger

	database *DatabaseService
	artists  *ArtistService
	identity *IdentityService
}

const (
	// DefaultBaseURL is the default Discogs API endpoint.
	DefaultBaseURL = "https://api.discogs.com"

	// DefaultUserAgent identifies the client to Discogs, which rejects
	// requests without one.
	DefaultUserAgent = "DiMMS-CLI/1.0"

	// DefaultRateLimit is the authenticated request allowance per minute.
	DefaultRateLimit = 60

	// DefaultBurst is the number of requests allowed back to back.
	DefaultBurst = 5

	defaultTimeout = 15 * time.Second
)

// NewClient creates a new Discogs API client.
//
// Returns an error if the token is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	base := http.DefaultTransport
	timeout := defaultTimeout
	if cfg.HTTPClient != nil {
		if cfg.HTTPClient.Transport != nil {
			base = cfg.HTTPClient.Transport
		}
		timeout = cfg.HTTPClient.Timeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Source: TokenSource(cfg.Token),
			Base:   base,
		},
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	limiter := cfg.Limiter
	if limiter == nil {
		limiter = NewLimiter(DefaultRateLimit, DefaultBurst)
	}

	c := &Client{
		userAgent:  userAgent,
		httpClient: httpClient,
		baseURL:    baseURL,
		limiter:    limiter,
		logger:     cfg.Logger,
	}

	c.database = &DatabaseService{client: c}
	c.artists = &ArtistService{client: c}
	c.identity = &IdentityService{client: c}

	return c, nil
}

// TokenSource returns a static token source that renders the Discogs
// personal token header: "Authorization: Discogs token=<token>".
func TokenSource(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: fmt.Sprintf("token=%s", token),
		TokenType:   "Discogs",
	})
}

// NewLimiter returns a limiter allowing perMinute requests per minute.
func NewLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

// Database returns the database search service.
func (c *Client) Database() *DatabaseService {
	return c.database
}

// Artists returns the artist service.
func (c *Client) Artists() *ArtistService {
	return c.artists
}

// Identity returns the identity service.
func (c *Client) Identity() *IdentityService {
	return c.identity
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
