package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jfmyers9/dimms/internal/session"
	"github.com/rs/zerolog"
)

// DefaultDumpFile is the file name used by Dump when none is given.
const DefaultDumpFile = "complete_dump.csv"

// Predefined export precondition failures.
var (
	ErrNoRecentSearch = errors.New("no recent search data available; search for artists or albums first")
	ErrNoArtistData   = errors.New("no artist data in last search")
	ErrNoAlbumData    = errors.New("no album data in last search")
	ErrNoData         = errors.New("no data available to dump; perform some searches first")
)

// File describes one written file.
type File struct {
	Path    string
	Kind    string // "artists", "albums" or "all"
	Records int
}

// Report summarizes an export.
type Report struct {
	Files   []File
	Artists int // artist rows written
	Albums  int // album rows written
}

// Exporter writes session data to CSV files in a directory.
type Exporter struct {
	dir    string
	logger zerolog.Logger
}

// New creates an Exporter writing into dir ("" means the working directory).
func New(dir string, logger zerolog.Logger) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{
		dir:    dir,
		logger: logger.With().Str("component", "exporter").Logger(),
	}
}

// WriteLast writes the most recent search to artists_<key>.csv or
// albums_<key>_<artistID>.csv.
func (e *Exporter) WriteLast(store *session.Store) (Report, error) {
	if store.Len() == 0 {
		return Report{}, ErrNoRecentSearch
	}
	last, ok := store.Last()
	if !ok {
		return Report{}, ErrNoRecentSearch
	}

	switch last.Kind {
	case session.KindArtists:
		if last.Artists == nil {
			return Report{}, ErrNoArtistData
		}

		rows := make([][]string, 0, len(last.Artists))
		for _, a := range last.Artists {
			rows = append(rows, []string{a.Title, strconv.Itoa(a.ID), a.URI})
		}

		name := fmt.Sprintf("artists_%s.csv", fileSafe(last.Key))
		path, err := e.write(name, []string{"title", "id", "uri"}, rows)
		if err != nil {
			return Report{}, err
		}
		return Report{
			Files:   []File{{Path: path, Kind: "artists", Records: len(rows)}},
			Artists: len(rows),
		}, nil

	case session.KindAlbums:
		if last.Releases == nil {
			return Report{}, ErrNoAlbumData
		}

		rows := make([][]string, 0, len(last.Releases))
		for _, r := range last.Releases {
			rows = append(rows, []string{r.Title, year(r.Year), strconv.Itoa(r.ID), r.Artist})
		}

		name := fmt.Sprintf("albums_%s_%s.csv", fileSafe(last.Key), fileSafe(last.ArtistID))
		path, err := e.write(name, []string{"title", "year", "id", "artist"}, rows)
		if err != nil {
			return Report{}, err
		}
		return Report{
			Files:  []File{{Path: path, Kind: "albums", Records: len(rows)}},
			Albums: len(rows),
		}, nil

	default:
		return Report{}, fmt.Errorf("unknown last search kind %q", last.Kind)
	}
}

// Dump writes everything in the store. With separate set it writes
// artists_<filename> and albums_<filename>; otherwise one combined file
// tagged by data_type.
func (e *Exporter) Dump(store *session.Store, filename string, separate bool) (Report, error) {
	if store.Len() == 0 {
		return Report{}, ErrNoData
	}
	if filename == "" {
		filename = DefaultDumpFile
	}
	filename = fileSafe(filename)

	entries := store.Entries()

	if separate {
		return e.dumpSeparate(entries, filename)
	}
	return e.dumpCombined(entries, filename)
}

func (e *Exporter) dumpSeparate(entries []session.ArtistEntry, filename string) (Report, error) {
	var artistRows, albumRows [][]string

	for _, entry := range entries {
		for _, a := range entry.SearchResults.Items {
			artistRows = append(artistRows, []string{
				entry.Key,
				a.Title,
				strconv.Itoa(a.ID),
				a.URI,
				strconv.Itoa(entry.SearchResults.Total),
			})
		}

		for _, id := range entry.AlbumIDs() {
			albums := entry.Albums[id]
			for _, r := range albums.Items {
				albumRows = append(albumRows, []string{
					entry.Key,
					id,
					strconv.Itoa(r.ID),
					r.Artist,
					r.Title,
					year(r.Year),
					strconv.Itoa(albums.Total),
				})
			}
		}
	}

	artistPath, err := e.write("artists_"+filename,
		[]string{"search_term", "title", "id", "uri", "total_results"}, artistRows)
	if err != nil {
		return Report{}, err
	}

	albumPath, err := e.write("albums_"+filename,
		[]string{"search_term", "artist_id", "release_id", "artist_name", "title", "year", "total_releases"}, albumRows)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Files: []File{
			{Path: artistPath, Kind: "artists", Records: len(artistRows)},
			{Path: albumPath, Kind: "albums", Records: len(albumRows)},
		},
		Artists: len(artistRows),
		Albums:  len(albumRows),
	}, nil
}

func (e *Exporter) dumpCombined(entries []session.ArtistEntry, filename string) (Report, error) {
	var rows [][]string
	artists, albums := 0, 0

	for _, entry := range entries {
		for _, a := range entry.SearchResults.Items {
			id := strconv.Itoa(a.ID)
			rows = append(rows, []string{
				"artist",
				entry.Key,
				id,
				a.Title,
				a.Title,
				id,
				a.URI,
				"",
				"",
				strconv.Itoa(entry.SearchResults.Total),
			})
			artists++
		}

		for _, queriedID := range entry.AlbumIDs() {
			listing := entry.Albums[queriedID]
			for _, r := range listing.Items {
				id := strconv.Itoa(r.ID)
				rows = append(rows, []string{
					"album",
					entry.Key,
					queriedID,
					r.Artist,
					r.Title,
					id,
					"",
					year(r.Year),
					id,
					strconv.Itoa(listing.Total),
				})
				albums++
			}
		}
	}

	header := []string{
		"data_type",
		"search_term",
		"artist_id",
		"artist_name",
		"title",
		"id",
		"uri",
		"year",
		"release_id",
		"total_count",
	}

	path, err := e.write(filename, header, rows)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Files:   []File{{Path: path, Kind: "all", Records: len(rows)}},
		Artists: artists,
		Albums:  albums,
	}, nil
}

// year renders unknown years (zero) as an empty cell.
func year(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

// fileSafe keeps user-supplied keys from escaping the export directory.
func fileSafe(s string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(s)
}
