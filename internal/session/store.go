package session

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/jfmyers9/dimms/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies what the last search produced.
type Kind string

const (
	KindArtists Kind = "artists"
	KindAlbums  Kind = "albums"
)

// SearchResults holds the artists found for one query.
type SearchResults struct {
	Items []model.SearchRecord
	Total int
}

// Albums holds the releases listed for one artist ID.
type Albums struct {
	Items []model.ReleaseRecord
	Total int
}

// ArtistEntry is everything collected for one artist key.
type ArtistEntry struct {
	Key           string
	SearchResults SearchResults
	Albums        map[string]Albums

	albumOrder []string
}

// AlbumIDs returns the artist IDs with stored albums in the order they
// were first listed.
func (e *ArtistEntry) AlbumIDs() []string {
	ids := make([]string, len(e.albumOrder))
	copy(ids, e.albumOrder)
	return ids
}

func (e *ArtistEntry) clone() ArtistEntry {
	albums := make(map[string]Albums, len(e.Albums))
	for id, a := range e.Albums {
		albums[id] = a
	}
	return ArtistEntry{
		Key:           e.Key,
		SearchResults: e.SearchResults,
		Albums:        albums,
		albumOrder:    e.AlbumIDs(),
	}
}

// LastSearch points at the most recent successful search or listing.
// Exactly one of Artists or Releases is set, according to Kind.
type LastSearch struct {
	Kind     Kind
	Key      string
	ArtistID string // set for KindAlbums
	Artists  []model.SearchRecord
	Releases []model.ReleaseRecord
}

// Store holds every result seen during one process run.
//
// It is created empty, mutated only by successful API calls, and
// discarded when the process exits. All access is serialized by mu.
type Store struct {
	mu      sync.RWMutex
	artists map[string]*ArtistEntry
	order   []string
	last    *LastSearch
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		artists: make(map[string]*ArtistEntry),
	}
}

// ArtistKey returns the store key for an artist name.
func ArtistKey(name string) string {
	// Casers carry state and are not shared
	return cases.Lower(language.Und).String(name)
}

// PlaceholderKey returns the key used for an artist ID that was never
// found by a name search.
func PlaceholderKey(artistID int) string {
	return fmt.Sprintf("artist_%d", artistID)
}

// RecordSearch stores a successful artist search under the lower-cased
// query and makes it the last search. Albums already collected for the
// same key are kept.
func (s *Store) RecordSearch(query string, res model.ArtistSearch) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ArtistKey(query)
	entry := s.entryLocked(key)
	items := res.Items
	if items == nil {
		items = []model.SearchRecord{}
	}
	entry.SearchResults = SearchResults{Items: items, Total: res.Total}

	s.last = &LastSearch{
		Kind:    KindArtists,
		Key:     key,
		Artists: res.Items,
	}

	return key
}

// RecordReleases stores a successful release listing under the artist
// that owns artistID and makes it the last search.
//
// The owner is the first stored search result with the same ID. When no
// search has returned that ID, a placeholder entry is created so the
// data can still be exported.
func (s *Store) RecordReleases(artistID int, res model.ReleaseListing) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.resolveLocked(artistID)
	if !ok {
		key = PlaceholderKey(artistID)
	}

	entry := s.entryLocked(key)
	id := strconv.Itoa(artistID)
	if _, exists := entry.Albums[id]; !exists {
		entry.albumOrder = append(entry.albumOrder, id)
	}
	entry.Albums[id] = Albums{Items: res.Items, Total: res.Total}

	s.last = &LastSearch{
		Kind:     KindAlbums,
		Key:      key,
		ArtistID: id,
		Releases: res.Items,
	}

	return key
}

// ResolveArtist returns the key of the entry whose search results
// contain artistID.
func (s *Store) ResolveArtist(artistID int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolveLocked(artistID)
}

func (s *Store) resolveLocked(artistID int) (string, bool) {
	for _, key := range s.order {
		for _, rec := range s.artists[key].SearchResults.Items {
			if rec.ID == artistID {
				return key, true
			}
		}
	}
	return "", false
}

func (s *Store) entryLocked(key string) *ArtistEntry {
	entry, ok := s.artists[key]
	if !ok {
		entry = &ArtistEntry{
			Key:           key,
			SearchResults: SearchResults{Items: []model.SearchRecord{}},
			Albums:        make(map[string]Albums),
		}
		s.artists[key] = entry
		s.order = append(s.order, key)
	}
	return entry
}

// Last returns the most recent search, if any.
func (s *Store) Last() (LastSearch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last == nil {
		return LastSearch{}, false
	}
	return *s.last, true
}

// Entry returns a copy of the entry stored under key.
func (s *Store) Entry(key string) (ArtistEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.artists[key]
	if !ok {
		return ArtistEntry{}, false
	}
	return entry.clone(), true
}

// Entries returns copies of all entries in insertion order.
func (s *Store) Entries() []ArtistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]ArtistEntry, 0, len(s.order))
	for _, key := range s.order {
		entries = append(entries, s.artists[key].clone())
	}
	return entries
}

// Len returns the number of artist entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
