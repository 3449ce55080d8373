package discogs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// DatabaseService provides database search operations.
type DatabaseService struct {
	client *Client
}

// SearchArtists searches the Discogs database for artists matching name.
//
// Example:
//
//	resp, err := client.Database().SearchArtists(ctx, "Muse", discogs.PageOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range resp.Results {
//	    fmt.Println(r.ID, r.Title)
//	}
func (s *DatabaseService) SearchArtists(ctx context.Context, name string, opts PageOptions) (*SearchResponse, error) {
	if name == "" {
		return nil, fmt.Errorf("discogs: search query is required")
	}

	query := url.Values{}
	query.Set("q", name)
	query.Set("type", "artist")
	opts.apply(query)

	var resp SearchResponse
	if err := s.client.get(ctx, "/database/search", query, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (o PageOptions) apply(query url.Values) {
	if o.Page > 0 {
		query.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(o.PerPage))
	}
}
