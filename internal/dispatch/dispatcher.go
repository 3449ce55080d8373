package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
)

// Dispatcher resolves a line of input to one command and runs it.
type Dispatcher struct {
	handlers  *Handlers
	presenter Presenter
	commands  []*command
	lookup    map[string]*command
	logger    zerolog.Logger
}

// New builds the command table once and returns a Dispatcher over it.
func New(handlers *Handlers, presenter Presenter, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		handlers:  handlers,
		presenter: presenter,
		commands:  commandTable(),
		lookup:    make(map[string]*command),
		logger:    logger.With().Str("component", "dispatcher").Logger(),
	}

	for _, c := range d.commands {
		d.lookup[c.name] = c
		for _, alias := range c.aliases {
			d.lookup[alias] = c
		}
	}

	return d
}

// Tokenize splits a line with shell quoting rules. There is no comment
// syntax, so "#" is an ordinary character.
func Tokenize(line string) ([]string, error) {
	return shellquote.Split(line)
}

// Normalize folds case and rewrites hyphens so that "Search-Artists" and
// "search_artists" name the same command.
func Normalize(name string) string {
	return strings.ReplaceAll(cases.Fold().String(name), "-", "_")
}

// Resolve returns the canonical name for a command token.
func (d *Dispatcher) Resolve(name string) (string, bool) {
	c, ok := d.lookup[Normalize(name)]
	if !ok {
		return "", false
	}
	return c.name, true
}

// Names returns every command name in its hyphenated form plus aliases,
// sorted, for completion.
func (d *Dispatcher) Names() []string {
	var names []string
	for _, c := range d.commands {
		names = append(names, strings.ReplaceAll(c.name, "_", "-"))
		names = append(names, c.aliases...)
	}
	sort.Strings(names)
	return names
}

// Help describes every command.
func (d *Dispatcher) Help() *HelpResult {
	help := &HelpResult{}
	for _, c := range d.commands {
		help.Commands = append(help.Commands, CommandHelp{
			Name:    strings.ReplaceAll(c.name, "_", "-"),
			Aliases: c.aliases,
			Usage:   c.usage,
			Summary: c.summary,
		})
	}
	return help
}

// Dispatch runs one line and returns its result. Blank input returns
// (nil, nil).
func (d *Dispatcher) Dispatch(ctx context.Context, line string) (Result, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	tokens, err := Tokenize(line)
	if err != nil {
		return nil, &UsageError{Message: fmt.Sprintf("could not parse input: %v", err), Err: err}
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	c, ok := d.lookup[Normalize(tokens[0])]
	if !ok {
		return nil, &UnknownCommandError{Name: tokens[0]}
	}

	d.logger.Debug().Str("command", c.name).Strs("args", tokens[1:]).Msg("Dispatching")

	if c.name == CmdHelp {
		return d.Help(), nil
	}
	return d.run(ctx, c, tokens[1:])
}

func (d *Dispatcher) run(ctx context.Context, c *command, args []string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Str("command", c.name).Interface("panic", r).Msg("Handler panicked")
			res, err = nil, &InternalError{Command: c.name, Value: r}
		}
	}()

	res, err = c.run(ctx, d.handlers, args)
	if err != nil {
		// Typed nil results must not reach the presenter
		return nil, err
	}
	return res, nil
}

// Execute dispatches line and hands the outcome to the presenter.
// ErrExit is returned without being presented; every other error is
// presented and returned.
func (d *Dispatcher) Execute(ctx context.Context, line string) error {
	res, err := d.Dispatch(ctx, line)
	if err != nil {
		if errors.Is(err, ErrExit) {
			return err
		}
		d.presenter.Error(err)
		return err
	}
	if res != nil {
		d.presenter.Present(res)
	}
	return nil
}
