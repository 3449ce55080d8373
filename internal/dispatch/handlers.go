package dispatch

import (
	"context"

	"github.com/jfmyers9/dimms/internal/export"
	"github.com/jfmyers9/dimms/internal/model"
	"github.com/jfmyers9/dimms/internal/session"
	"github.com/rs/zerolog"
)

// Gateway is the subset of gateway.Gateway the handlers need.
type Gateway interface {
	SearchArtists(ctx context.Context, name string) model.ArtistSearch
	ListReleases(ctx context.Context, artistID int) model.ReleaseListing
}

// Exporter is the subset of export.Exporter the handlers need.
type Exporter interface {
	WriteLast(store *session.Store) (export.Report, error)
	Dump(store *session.Store, filename string, separate bool) (export.Report, error)
}

// Handlers implements every operation against one session store. The
// same Handlers value serves the shell and the direct subcommands.
type Handlers struct {
	gateway  Gateway
	store    *session.Store
	exporter Exporter
	logger   zerolog.Logger
}

// NewHandlers creates Handlers owning store for the life of the process.
func NewHandlers(gw Gateway, store *session.Store, exporter Exporter, logger zerolog.Logger) *Handlers {
	return &Handlers{
		gateway:  gw,
		store:    store,
		exporter: exporter,
		logger:   logger.With().Str("component", "handlers").Logger(),
	}
}

// SearchArtists searches by name and records the result.
// The store is left untouched when the gateway reports an error.
func (h *Handlers) SearchArtists(ctx context.Context, name string) (*ArtistsResult, error) {
	if name == "" {
		return nil, searchUsage()
	}

	res := h.gateway.SearchArtists(ctx, name)
	if res.Failed() {
		return nil, &APIError{Op: "search_artists", Message: res.Error}
	}

	key := h.store.RecordSearch(name, res)
	h.logger.Debug().Str("key", key).Int("count", len(res.Items)).Msg("Recorded artist search")

	return &ArtistsResult{
		Query:   name,
		Key:     key,
		Total:   res.Total,
		Artists: res.Items,
	}, nil
}

// ListAlbums lists releases for artistID and files them under the
// artist that owns the ID.
func (h *Handlers) ListAlbums(ctx context.Context, artistID int) (*ReleasesResult, error) {
	res := h.gateway.ListReleases(ctx, artistID)
	if res.Failed() {
		return nil, &APIError{Op: "list_albums", Message: res.Error}
	}

	key := h.store.RecordReleases(artistID, res)
	h.logger.Debug().Str("key", key).Int("artist_id", artistID).Int("count", len(res.Items)).Msg("Recorded release listing")

	return &ReleasesResult{
		ArtistID: artistID,
		Key:      key,
		Total:    res.Total,
		Releases: res.Items,
	}, nil
}

// WriteLastSearch exports the most recent search.
func (h *Handlers) WriteLastSearch() (*ExportResult, error) {
	report, err := h.exporter.WriteLast(h.store)
	if err != nil {
		return nil, err
	}
	return &ExportResult{Mode: ExportLast, Report: report}, nil
}

// DumpAll exports everything collected so far.
func (h *Handlers) DumpAll(opts DumpOptions) (*ExportResult, error) {
	report, err := h.exporter.Dump(h.store, opts.File, opts.Separate)
	if err != nil {
		return nil, err
	}

	mode := ExportCombined
	if opts.Separate {
		mode = ExportSeparate
	}
	return &ExportResult{Mode: mode, Report: report}, nil
}
