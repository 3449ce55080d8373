package dispatch

import (
	"github.com/jfmyers9/dimms/internal/export"
	"github.com/jfmyers9/dimms/internal/model"
)

// Result is the structured outcome of a successful operation.
type Result interface {
	result()
}

// ArtistsResult is returned by search_artists.
type ArtistsResult struct {
	Query   string
	Key     string
	Total   int
	Artists []model.SearchRecord
}

// ReleasesResult is returned by list_albums.
type ReleasesResult struct {
	ArtistID int
	Key      string
	Total    int
	Releases []model.ReleaseRecord
}

// ExportMode says which export produced an ExportResult.
type ExportMode int

const (
	ExportLast ExportMode = iota
	ExportCombined
	ExportSeparate
)

// ExportResult is returned by the export operations.
type ExportResult struct {
	Mode   ExportMode
	Report export.Report
}

// CommandHelp describes one command for help output.
type CommandHelp struct {
	Name    string
	Aliases []string
	Usage   string
	Summary string
	Flags   string // formatted flag list, set when help is for one command
}

// HelpResult is returned by help.
type HelpResult struct {
	Commands []CommandHelp
}

func (*ArtistsResult) result()  {}
func (*ReleasesResult) result() {}
func (*ExportResult) result()   {}
func (*HelpResult) result()     {}

// Presenter shows results and errors to the user.
type Presenter interface {
	Present(Result)
	Error(error)
}
