package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/jfmyers9/dimms/internal/model"
	"github.com/jfmyers9/dimms/pkg/discogs"
	"github.com/rs/zerolog"
)

// Gateway wraps the Discogs API client and flattens its responses into
// model records.
type Gateway struct {
	client  *discogs.Client
	perPage int
	logger  zerolog.Logger
}

// Options configures a Gateway.
type Options struct {
	PerPage int // Page size for searches and listings (0 = Discogs default)
}

// New creates a Gateway over an existing Discogs client.
func New(client *discogs.Client, opts Options, logger zerolog.Logger) *Gateway {
	return &Gateway{
		client:  client,
		perPage: opts.PerPage,
		logger:  logger.With().Str("component", "gateway").Logger(),
	}
}

// SearchArtists searches for artists by name.
// HTTP and transport failures are reported in the result's Error field.
func (g *Gateway) SearchArtists(ctx context.Context, name string) model.ArtistSearch {
	resp, err := g.client.Database().SearchArtists(ctx, name, discogs.PageOptions{PerPage: g.perPage})
	if err != nil {
		g.logger.Error().Err(err).Str("query", name).Msg("Search error")
		return model.ArtistSearch{Error: errorText(err)}
	}

	items := make([]model.SearchRecord, 0, len(resp.Results))
	for _, r := range resp.Results {
		items = append(items, model.SearchRecord{
			Title: r.Title,
			ID:    r.ID,
			URI:   r.URI,
		})
	}

	return model.ArtistSearch{
		Total: resp.Pagination.Items,
		Items: items,
	}
}

// ListReleases lists the releases for an artist ID.
// HTTP and transport failures are reported in the result's Error field.
func (g *Gateway) ListReleases(ctx context.Context, artistID int) model.ReleaseListing {
	resp, err := g.client.Artists().Releases(ctx, artistID, discogs.PageOptions{PerPage: g.perPage})
	if err != nil {
		g.logger.Error().Err(err).Int("artist_id", artistID).Msg("Release listing error")
		return model.ReleaseListing{Error: errorText(err)}
	}

	items := make([]model.ReleaseRecord, 0, len(resp.Releases))
	for _, r := range resp.Releases {
		items = append(items, model.ReleaseRecord{
			ID:     r.ID,
			Title:  r.Title,
			Year:   r.Year,
			Artist: r.Artist,
		})
	}

	return model.ReleaseListing{
		Total: resp.Pagination.Items,
		Items: items,
	}
}

// Identity verifies the configured token and returns who it belongs to.
func (g *Gateway) Identity(ctx context.Context) (*discogs.Identity, error) {
	id, err := g.client.Identity().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	g.logger.Info().Str("username", id.Username).Msg("Authenticated")
	return id, nil
}

// errorText renders API status failures as "Error: <status>" and
// everything else as the error message.
func errorText(err error) string {
	var apiErr *discogs.Error
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Error: %d", apiErr.StatusCode)
	}
	return err.Error()
}

// LogAdapter adapts a zerolog.Logger to the discogs.Logger interface.
type LogAdapter struct {
	Logger zerolog.Logger
}

// Debugf implements discogs.Logger.
func (a LogAdapter) Debugf(format string, args ...interface{}) {
	a.Logger.Debug().Msgf(format, args...)
}
