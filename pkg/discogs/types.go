package discogs

// Pagination describes the paging block present in list responses.
type Pagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"` // Total number of items across all pages
}

// SearchResult is one entry in a database search response.
type SearchResult struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	URI         string `json:"uri"`
	ResourceURL string `json:"resource_url"`
	Thumb       string `json:"thumb"`
}

// SearchResponse is the response from GET /database/search.
type SearchResponse struct {
	Pagination Pagination     `json:"pagination"`
	Results    []SearchResult `json:"results"`
}

// Release is one entry in an artist's release listing.
//
// Year is zero when Discogs has no year for the release.
type Release struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Year        int    `json:"year"`
	Role        string `json:"role"`
	ResourceURL string `json:"resource_url"`
}

// ReleasesResponse is the response from GET /artists/{id}/releases.
type ReleasesResponse struct {
	Pagination Pagination `json:"pagination"`
	Releases   []Release  `json:"releases"`
}

// Identity is the response from GET /oauth/identity.
type Identity struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	ResourceURL  string `json:"resource_url"`
	ConsumerName string `json:"consumer_name"`
}

// PageOptions selects a page of a paginated listing.
// Zero values let Discogs apply its defaults.
type PageOptions struct {
	Page    int
	PerPage int
}
