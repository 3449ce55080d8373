package render

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jfmyers9/dimms/internal/dispatch"
	"github.com/jfmyers9/dimms/internal/export"
)

const titleWidth = 60

// Console prints results as tables and errors as one-line messages.
type Console struct {
	out io.Writer
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Info prints a line of text.
func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, msg)
}

// Present implements dispatch.Presenter.
func (c *Console) Present(r dispatch.Result) {
	switch res := r.(type) {
	case *dispatch.ArtistsResult:
		c.artists(res)
	case *dispatch.ReleasesResult:
		c.releases(res)
	case *dispatch.ExportResult:
		c.export(res)
	case *dispatch.HelpResult:
		c.help(res)
	}
}

func (c *Console) artists(res *dispatch.ArtistsResult) {
	t := &Table{
		Title: "Search Results for: " + res.Query,
		Columns: []Column{
			{Header: "Name", Align: AlignRight, MaxWidth: titleWidth},
			{Header: "ID"},
		},
	}
	for _, a := range res.Artists {
		t.AddRow(a.Title, strconv.Itoa(a.ID))
	}
	t.Render(c.out)
	fmt.Fprintf(c.out, "Total Results: %d\n", res.Total)
}

func (c *Console) releases(res *dispatch.ReleasesResult) {
	t := &Table{
		Title: fmt.Sprintf("Albums for Artist ID: %d", res.ArtistID),
		Columns: []Column{
			{Header: "Title", Align: AlignRight, MaxWidth: titleWidth},
			{Header: "Year"},
			{Header: "ID"},
		},
	}
	for _, r := range res.Releases {
		year := ""
		if r.Year != 0 {
			year = strconv.Itoa(r.Year)
		}
		t.AddRow(r.Title, year, strconv.Itoa(r.ID))
	}
	t.Render(c.out)
	fmt.Fprintf(c.out, "Total Results: %d\n", res.Total)
}

func (c *Console) export(res *dispatch.ExportResult) {
	switch res.Mode {
	case dispatch.ExportLast:
		for _, f := range res.Report.Files {
			fmt.Fprintf(c.out, "Successfully wrote %d %s to %s\n", f.Records, f.Kind, filepath.Base(f.Path))
		}

	case dispatch.ExportSeparate:
		for _, f := range res.Report.Files {
			kind := strings.TrimSuffix(f.Kind, "s")
			if f.Records == 0 {
				fmt.Fprintf(c.out, "No %s data found; wrote header only to %s\n", kind, filepath.Base(f.Path))
				continue
			}
			fmt.Fprintf(c.out, "Successfully wrote %d %s records to %s\n", f.Records, kind, filepath.Base(f.Path))
		}

	case dispatch.ExportCombined:
		for _, f := range res.Report.Files {
			if f.Records == 0 {
				fmt.Fprintf(c.out, "No data found; wrote header only to %s\n", filepath.Base(f.Path))
				continue
			}
			fmt.Fprintf(c.out, "Successfully wrote %d total records to %s\n", f.Records, filepath.Base(f.Path))
		}
		fmt.Fprintf(c.out, "Summary: %d artists, %d albums\n", res.Report.Artists, res.Report.Albums)
	}
}

func (c *Console) help(res *dispatch.HelpResult) {
	if len(res.Commands) == 1 && res.Commands[0].Flags != "" {
		cmd := res.Commands[0]
		fmt.Fprintf(c.out, "%s\n\nUsage: %s\n\nFlags:\n%s", cmd.Summary, cmd.Usage, cmd.Flags)
		return
	}

	fmt.Fprintln(c.out, "Available commands:")

	width := 0
	for _, cmd := range res.Commands {
		if len(cmd.Usage) > width {
			width = len(cmd.Usage)
		}
	}

	for _, cmd := range res.Commands {
		line := fmt.Sprintf("  %s  %s", padToWidth(cmd.Usage, width), cmd.Summary)
		if len(cmd.Aliases) > 0 {
			line += fmt.Sprintf(" (aliases: %s)", strings.Join(cmd.Aliases, ", "))
		}
		fmt.Fprintln(c.out, line)
	}
}

// Error implements dispatch.Presenter.
func (c *Console) Error(err error) {
	var (
		usage    *dispatch.UsageError
		unknown  *dispatch.UnknownCommandError
		apiErr   *dispatch.APIError
		internal *dispatch.InternalError
	)

	switch {
	case errors.As(err, &usage):
		fmt.Fprintf(c.out, "Error: %s\n", usage.Message)
		if usage.Usage != "" {
			fmt.Fprintf(c.out, "Usage: %s\n", usage.Usage)
		}
	case errors.As(err, &unknown):
		fmt.Fprintln(c.out, unknown.Error())
		fmt.Fprintln(c.out, "Type 'help' for available commands.")
	case errors.As(err, &apiErr):
		fmt.Fprintln(c.out, apiErr.Message)
	case errors.As(err, &internal):
		fmt.Fprintf(c.out, "Error executing command: %v\n", internal.Value)
	case errors.Is(err, export.ErrNoRecentSearch):
		fmt.Fprintln(c.out, "No recent search data available. Please search for artists or albums first.")
	case errors.Is(err, export.ErrNoArtistData):
		fmt.Fprintln(c.out, "No artist data in last search.")
	case errors.Is(err, export.ErrNoAlbumData):
		fmt.Fprintln(c.out, "No album data in last search.")
	case errors.Is(err, export.ErrNoData):
		fmt.Fprintln(c.out, "No data available to dump. Please perform some searches first.")
	default:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}
