package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jfmyers9/dimms/internal/export"
	"github.com/spf13/pflag"
)

// Canonical command names.
const (
	CmdSearchArtists = "search_artists"
	CmdListAlbums    = "list_albums"
	CmdWriteLast     = "write_last_search_to_file"
	CmdDumpAll       = "dump_all_data"
	CmdHelp          = "help"
	CmdBye           = "bye"
)

type runFunc func(ctx context.Context, h *Handlers, args []string) (Result, error)

// command is one row of the dispatch table.
type command struct {
	name    string
	aliases []string
	usage   string
	summary string
	run     runFunc
}

// DumpOptions are the dump_all_data flags.
type DumpOptions struct {
	File     string
	Separate bool
}

// BindDumpFlags registers the dump_all_data flags on fs.
func BindDumpFlags(fs *pflag.FlagSet, opts *DumpOptions) {
	fs.StringVarP(&opts.File, "file", "f", export.DefaultDumpFile, "Output file name")
	fs.BoolVarP(&opts.Separate, "separate", "s", false, "Write artists and albums to separate files")
}

// ParseArtistID converts a list_albums argument to an artist ID.
func ParseArtistID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, &UsageError{
			Command: CmdListAlbums,
			Message: fmt.Sprintf("Invalid artist ID %q: must be an integer", arg),
			Usage:   "list-albums <artist_id>",
			Err:     err,
		}
	}
	return id, nil
}

func searchUsage() error {
	return &UsageError{
		Command: CmdSearchArtists,
		Message: "Artist name is required",
		Usage:   "search-artists <artist_name>",
	}
}

func noArgs(name, usage string, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return &UsageError{
		Command: name,
		Message: fmt.Sprintf("%s takes no arguments", usage),
		Usage:   usage,
	}
}

func commandTable() []*command {
	return []*command{
		{
			name:    CmdSearchArtists,
			usage:   "search-artists <artist_name>",
			summary: "Search for artists by name",
			run: func(ctx context.Context, h *Handlers, args []string) (Result, error) {
				if len(args) == 0 {
					return nil, searchUsage()
				}
				return h.SearchArtists(ctx, strings.Join(args, " "))
			},
		},
		{
			name:    CmdListAlbums,
			usage:   "list-albums <artist_id>",
			summary: "List releases for an artist ID",
			run: func(ctx context.Context, h *Handlers, args []string) (Result, error) {
				if len(args) != 1 {
					return nil, &UsageError{
						Command: CmdListAlbums,
						Message: "Artist ID is required",
						Usage:   "list-albums <artist_id>",
					}
				}
				id, err := ParseArtistID(args[0])
				if err != nil {
					return nil, err
				}
				return h.ListAlbums(ctx, id)
			},
		},
		{
			name:    CmdWriteLast,
			usage:   "write-last-search-to-file",
			summary: "Write the last search results to a CSV file",
			run: func(ctx context.Context, h *Handlers, args []string) (Result, error) {
				if err := noArgs(CmdWriteLast, "write-last-search-to-file", args); err != nil {
					return nil, err
				}
				return h.WriteLastSearch()
			},
		},
		{
			name:    CmdDumpAll,
			usage:   dumpUsage,
			summary: "Write everything collected so far to CSV",
			run: func(ctx context.Context, h *Handlers, args []string) (Result, error) {
				opts, err := parseDumpArgs(args)
				if errors.Is(err, pflag.ErrHelp) {
					return dumpHelp(), nil
				}
				if err != nil {
					return nil, err
				}
				return h.DumpAll(opts)
			},
		},
		{
			name:    CmdHelp,
			aliases: []string{"h"},
			usage:   "help",
			summary: "Show this help",
		},
		{
			name:    CmdBye,
			aliases: []string{"q", "exit", "quit"},
			usage:   "bye",
			summary: "Leave the interactive shell",
			run: func(ctx context.Context, h *Handlers, args []string) (Result, error) {
				return nil, ErrExit
			},
		},
	}
}

const dumpUsage = "dump-all-data [--file|-f <name>] [--separate|-s]"

func newDumpFlagSet(opts *DumpOptions) *pflag.FlagSet {
	fs := pflag.NewFlagSet(CmdDumpAll, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	BindDumpFlags(fs, opts)
	return fs
}

// dumpHelp answers "dump-all-data --help".
func dumpHelp() *HelpResult {
	var opts DumpOptions
	return &HelpResult{Commands: []CommandHelp{{
		Name:    "dump-all-data",
		Usage:   dumpUsage,
		Summary: "Write everything collected so far to CSV",
		Flags:   newDumpFlagSet(&opts).FlagUsages(),
	}}}
}

func parseDumpArgs(args []string) (DumpOptions, error) {
	var opts DumpOptions

	fs := newDumpFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		return DumpOptions{}, &UsageError{
			Command: CmdDumpAll,
			Message: err.Error(),
			Usage:   dumpUsage,
			Err:     err,
		}
	}
	if fs.NArg() > 0 {
		return DumpOptions{}, &UsageError{
			Command: CmdDumpAll,
			Message: fmt.Sprintf("unexpected argument %q", fs.Arg(0)),
			Usage:   dumpUsage,
		}
	}
	if opts.File == "" {
		return DumpOptions{}, &UsageError{
			Command: CmdDumpAll,
			Message: "File name must not be empty",
			Usage:   dumpUsage,
		}
	}

	return opts, nil
}
