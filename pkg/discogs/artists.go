package discogs

import (
	"context"
	"fmt"
	"net/url"
)

// ArtistService provides artist operations.
type ArtistService struct {
	client *Client
}

// Releases lists the releases and masters credited to an artist.
//
// Example:
//
//	resp, err := client.Artists().Releases(ctx, 1, discogs.PageOptions{PerPage: 100})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("total:", resp.Pagination.Items)
func (s *ArtistService) Releases(ctx context.Context, artistID int, opts PageOptions) (*ReleasesResponse, error) {
	if artistID <= 0 {
		return nil, fmt.Errorf("discogs: invalid artist ID %d", artistID)
	}

	query := url.Values{}
	opts.apply(query)

	var resp ReleasesResponse
	path := fmt.Sprintf("/artists/%d/releases", artistID)
	if err := s.client.get(ctx, path, query, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
