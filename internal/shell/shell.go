package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/chzyer/readline"
	"github.com/jfmyers9/dimms/internal/dispatch"
	"github.com/rs/zerolog"
)

// Prompt is shown before every line.
const Prompt = "DiMMS (): "

const (
	leaveHint = "Use 'bye'/'q' to leave."
	goodbye   = "Goodbye!"
)

// LineReader reads one line of input. It returns readline.ErrInterrupt
// when the user presses Ctrl-C and io.EOF at end of input.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// Executor runs one line of input.
type Executor interface {
	Execute(ctx context.Context, line string) error
}

// Notifier prints status lines.
type Notifier interface {
	Info(msg string)
}

// Shell is the interactive read-dispatch loop.
type Shell struct {
	reader   LineReader
	exec     Executor
	notifier Notifier
	logger   zerolog.Logger

	// notify derives the context for one command
	notify func(ctx context.Context) (context.Context, context.CancelFunc)
}

// New creates a Shell.
func New(reader LineReader, exec Executor, notifier Notifier, logger zerolog.Logger) *Shell {
	return &Shell{
		reader:   reader,
		exec:     exec,
		notifier: notifier,
		logger:   logger.With().Str("component", "shell").Logger(),
		notify: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		},
	}
}

// Run reads and executes lines until an exit command, end of input, or
// ctx is done. Interrupts cancel only the command in flight.
func (s *Shell) Run(ctx context.Context) error {
	defer s.reader.Close()

	s.notifier.Info("Interactive Mode Started")
	s.notifier.Info("Type 'help' for available commands")
	s.notifier.Info("or 'exit'/'quit'/'bye'/'q' to leave.")
	s.notifier.Info("")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.reader.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			s.notifier.Info(leaveHint)
			continue
		case errors.Is(err, io.EOF):
			s.notifier.Info(goodbye)
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if s.execute(ctx, line) {
			s.notifier.Info(goodbye)
			return nil
		}
	}
}

// execute runs one line and reports whether the shell should stop.
func (s *Shell) execute(ctx context.Context, line string) bool {
	lineCtx, stop := s.notify(ctx)
	defer stop()

	err := s.exec.Execute(lineCtx, line)
	if errors.Is(err, dispatch.ErrExit) {
		return true
	}
	if err != nil {
		s.logger.Debug().Err(err).Str("line", line).Msg("Command failed")
	}
	return false
}

// NewReadline creates a LineReader with in-memory history and prefix
// completion over names.
func NewReadline(names []string) (*readline.Instance, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(names))
	for _, name := range names {
		items = append(items, readline.PcItem(name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		HistoryLimit:    500,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize line editor: %w", err)
	}
	return rl, nil
}
