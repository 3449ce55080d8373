package httpcache

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DefaultTTL matches how long Discogs metadata is considered fresh.
const DefaultTTL = 30 * time.Minute

// Transport is an http.RoundTripper that caches successful GET responses
// in SQLite for a fixed time to live.
type Transport struct {
	db     *sql.DB
	ttl    time.Duration
	base   http.RoundTripper
	logger zerolog.Logger
	now    func() time.Time
}

// Open creates a caching transport backed by the SQLite database at path.
// Use ":memory:" for a process-local cache.
func Open(path string, ttl time.Duration, base http.RoundTripper, logger zerolog.Logger) (*Transport, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// A single connection keeps ":memory:" databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS responses (
			key TEXT PRIMARY KEY,
			response BLOB NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		);

		CREATE INDEX IF NOT EXISTS idx_expires_at ON responses(expires_at);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if base == nil {
		base = http.DefaultTransport
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Transport{
		db:     db,
		ttl:    ttl,
		base:   base,
		logger: logger.With().Str("component", "httpcache").Logger(),
		now:    time.Now,
	}, nil
}

// Close closes the database connection
func (t *Transport) Close() error {
	if t.db != nil {
		return t.db.Close()
	}
	return nil
}

// RoundTrip serves GET requests from the cache when a fresh entry exists
// and stores 200 responses from the base transport.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.base.RoundTrip(req)
	}

	key := cacheKey(req)
	ctx := req.Context()

	if resp, ok := t.lookup(ctx, key, req); ok {
		t.logger.Debug().Str("url", req.URL.String()).Msg("Cache hit")
		return resp, nil
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	raw, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return resp, nil
	}

	if err := t.store(ctx, key, raw); err != nil {
		t.logger.Warn().Err(err).Str("url", req.URL.String()).Msg("Failed to store response")
	}

	// DumpResponse restored resp.Body, so the response is still readable
	return resp, nil
}

func (t *Transport) lookup(ctx context.Context, key string, req *http.Request) (*http.Response, bool) {
	var raw []byte
	err := t.db.QueryRowContext(ctx,
		"SELECT response FROM responses WHERE key = ? AND expires_at > ?",
		key, t.now().Unix(),
	).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			t.logger.Warn().Err(err).Msg("Failed to read cached response")
		}
		return nil, false
	}

	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(raw)), req)
	if err != nil {
		t.logger.Warn().Err(err).Msg("Discarding unreadable cached response")
		return nil, false
	}
	return resp, true
}

func (t *Transport) store(ctx context.Context, key string, raw []byte) error {
	query := `
		INSERT INTO responses (key, response, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET response = excluded.response, expires_at = excluded.expires_at
	`

	if _, err := t.db.ExecContext(ctx, query, key, raw, t.now().Add(t.ttl).Unix()); err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}
	return nil
}

// Prune removes expired responses and returns how many were deleted.
func (t *Transport) Prune(ctx context.Context) (int64, error) {
	result, err := t.db.ExecContext(ctx, "DELETE FROM responses WHERE expires_at <= ?", t.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}

// Clear removes every cached response.
func (t *Transport) Clear(ctx context.Context) (int64, error) {
	result, err := t.db.ExecContext(ctx, "DELETE FROM responses")
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}

// Count returns the number of cached responses.
// If includeExpired is false, only fresh entries are counted.
func (t *Transport) Count(ctx context.Context, includeExpired bool) (int, error) {
	query := "SELECT COUNT(*) FROM responses"
	args := []interface{}{}
	if !includeExpired {
		query += " WHERE expires_at > ?"
		args = append(args, t.now().Unix())
	}

	var count int
	if err := t.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

// cacheKey identifies a request by method and full URL. Credentials are
// not part of the key; the cache is per user via its file location.
func cacheKey(req *http.Request) string {
	return req.Method + " " + req.URL.String()
}
