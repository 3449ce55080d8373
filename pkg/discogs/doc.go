// Package discogs provides a client library for the Discogs REST API.
//
// # Overview
//
// This package covers the small part of the Discogs API needed to look up
// artists and their releases. It provides a type-safe API with context
// support, typed errors, and client-side rate limiting.
//
// # Quick Start
//
//	import "github.com/jfmyers9/dimms/pkg/discogs"
//
//	client, err := discogs.NewClient(discogs.Config{
//	    Token: os.Getenv("DISCOGS_TOKEN"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Authentication
//
// Discogs personal access tokens are sent as
//
//	Authorization: Discogs token=<token>
//
// The client attaches this header through an oauth2.Transport backed by a
// static token source, so the configured HTTPClient's Transport (for
// example a caching transport) still sees every request.
//
// # Searching
//
//	resp, err := client.Database().SearchArtists(ctx, "Muse", discogs.PageOptions{})
//
//	releases, err := client.Artists().Releases(ctx, 1003, discogs.PageOptions{})
//
// # Error Handling
//
// Non-200 responses are returned as *discogs.Error:
//
//	_, err := client.Artists().Releases(ctx, id, discogs.PageOptions{})
//	if errors.Is(err, discogs.ErrNotFound) {
//	    // no such artist
//	}
//
// # Rate Limiting
//
// Authenticated clients may make 60 requests per minute. The client waits
// on a golang.org/x/time/rate limiter before each request; pass
// Config.Limiter to override it.
//
// # API Coverage
//
// Currently implemented:
//   - Database search (artists)
//   - Artist releases
//   - OAuth identity
package discogs
