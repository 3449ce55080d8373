package model

// SearchRecord is one artist found by a search.
type SearchRecord struct {
	Title string
	ID    int
	URI   string
}

// ReleaseRecord is one release listed for an artist.
type ReleaseRecord struct {
	ID     int
	Title  string
	Year   int
	Artist string
}

// ArtistSearch is the result of an artist search.
// Error is set instead of returning a Go error for HTTP and transport
// failures; Items is nil in that case.
type ArtistSearch struct {
	Total int
	Items []SearchRecord
	Error string
}

// Failed reports whether the search did not complete.
func (s ArtistSearch) Failed() bool {
	return s.Error != ""
}

// ReleaseListing is the result of listing an artist's releases.
type ReleaseListing struct {
	Total int
	Items []ReleaseRecord
	Error string
}

// Failed reports whether the listing did not complete.
func (l ReleaseListing) Failed() bool {
	return l.Error != ""
}
