package shell

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/chzyer/readline"
	"github.com/jfmyers9/dimms/internal/dispatch"
	"github.com/jfmyers9/dimms/internal/export"
	"github.com/jfmyers9/dimms/internal/model"
	"github.com/jfmyers9/dimms/internal/session"
	"github.com/rs/zerolog"
)

type step struct {
	line string
	err  error
}

type scriptedReader struct {
	steps  []step
	pos    int
	closed bool
}

func (r *scriptedReader) Readline() (string, error) {
	if r.pos >= len(r.steps) {
		return "", io.EOF
	}
	s := r.steps[r.pos]
	r.pos++
	return s.line, s.err
}

func (r *scriptedReader) Close() error {
	r.closed = true
	return nil
}

type recordingExecutor struct {
	lines []string
	errs  map[string]error
}

func (e *recordingExecutor) Execute(ctx context.Context, line string) error {
	e.lines = append(e.lines, line)
	return e.errs[line]
}

type captureNotifier struct {
	messages []string
}

func (n *captureNotifier) Info(msg string) {
	n.messages = append(n.messages, msg)
}

func lines(steps ...string) []step {
	out := make([]step, len(steps))
	for i, s := range steps {
		out[i] = step{line: s}
	}
	return out
}

func lastMessage(n *captureNotifier) string {
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

func TestRunStopsOnExit(t *testing.T) {
	reader := &scriptedReader{steps: lines("search-artists Muse", "bye", "never")}
	exec := &recordingExecutor{errs: map[string]error{"bye": dispatch.ErrExit}}
	notifier := &captureNotifier{}

	err := New(reader, exec, notifier, zerolog.Nop()).Run(context.Background())

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if want := []string{"search-artists Muse", "bye"}; !reflect.DeepEqual(exec.lines, want) {
		t.Errorf("executed %q, want %q", exec.lines, want)
	}
	if got := lastMessage(notifier); got != goodbye {
		t.Errorf("last message = %q, want %q", got, goodbye)
	}
	if !reader.closed {
		t.Error("expected reader to be closed")
	}
}

func TestRunStopsOnEOF(t *testing.T) {
	reader := &scriptedReader{steps: lines("help")}
	exec := &recordingExecutor{}
	notifier := &captureNotifier{}

	err := New(reader, exec, notifier, zerolog.Nop()).Run(context.Background())

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if want := []string{"help"}; !reflect.DeepEqual(exec.lines, want) {
		t.Errorf("executed %q, want %q", exec.lines, want)
	}
	if got := lastMessage(notifier); got != goodbye {
		t.Errorf("last message = %q, want %q", got, goodbye)
	}
}

func TestRunInterruptContinues(t *testing.T) {
	reader := &scriptedReader{steps: []step{
		{err: readline.ErrInterrupt},
		{line: "list-albums 1"},
	}}
	exec := &recordingExecutor{}
	notifier := &captureNotifier{}

	err := New(reader, exec, notifier, zerolog.Nop()).Run(context.Background())

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	hinted := false
	for _, m := range notifier.messages {
		if m == leaveHint {
			hinted = true
		}
	}
	if !hinted {
		t.Errorf("expected leave hint in %q", notifier.messages)
	}
	if want := []string{"list-albums 1"}; !reflect.DeepEqual(exec.lines, want) {
		t.Errorf("executed %q, want %q", exec.lines, want)
	}
}

func TestRunCommandErrorsContinue(t *testing.T) {
	reader := &scriptedReader{steps: lines("foobar", "search-artists Muse")}
	exec := &recordingExecutor{errs: map[string]error{
		"foobar": &dispatch.UnknownCommandError{Name: "foobar"},
	}}

	err := New(reader, exec, &captureNotifier{}, zerolog.Nop()).Run(context.Background())

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if want := []string{"foobar", "search-artists Muse"}; !reflect.DeepEqual(exec.lines, want) {
		t.Errorf("executed %q, want %q", exec.lines, want)
	}
}

func TestRunReadError(t *testing.T) {
	boom := errors.New("terminal gone")
	reader := &scriptedReader{steps: []step{{err: boom}}}

	err := New(reader, &recordingExecutor{}, &captureNotifier{}, zerolog.Nop()).Run(context.Background())

	if !errors.Is(err, boom) {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := &scriptedReader{steps: lines("search-artists Muse")}
	exec := &recordingExecutor{}

	err := New(reader, exec, &captureNotifier{}, zerolog.Nop()).Run(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(exec.lines) != 0 {
		t.Errorf("expected nothing executed, got %q", exec.lines)
	}
}

func TestLineContextIsCancelledAfterCommand(t *testing.T) {
	var seen context.Context
	exec := executorFunc(func(ctx context.Context, line string) error {
		seen = ctx
		return nil
	})

	s := New(&scriptedReader{steps: lines("help")}, exec, &captureNotifier{}, zerolog.Nop())
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if seen == nil {
		t.Fatal("executor was not called")
	}
	if seen.Err() == nil {
		t.Error("per-command context must be released")
	}
}

type executorFunc func(ctx context.Context, line string) error

func (f executorFunc) Execute(ctx context.Context, line string) error {
	return f(ctx, line)
}

type stubGateway struct {
	calls int
}

func (g *stubGateway) SearchArtists(ctx context.Context, name string) model.ArtistSearch {
	g.calls++
	return model.ArtistSearch{Total: 1, Items: []model.SearchRecord{{Title: name, ID: 1}}}
}

func (g *stubGateway) ListReleases(ctx context.Context, artistID int) model.ReleaseListing {
	g.calls++
	return model.ReleaseListing{Items: []model.ReleaseRecord{}}
}

type nopPresenter struct{}

func (nopPresenter) Present(dispatch.Result) {}
func (nopPresenter) Error(error)             {}

func TestRunWithDispatcher(t *testing.T) {
	gw := &stubGateway{}
	store := session.New()
	h := dispatch.NewHandlers(gw, store, export.New(t.TempDir(), zerolog.Nop()), zerolog.Nop())
	d := dispatch.New(h, nopPresenter{}, zerolog.Nop())

	reader := &scriptedReader{steps: lines("", "foobar", "Search-Artists Muse", "search-artists", "Q", "list-albums 1")}

	err := New(reader, d, &captureNotifier{}, zerolog.Nop()).Run(context.Background())

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if gw.calls != 1 {
		t.Errorf("only the valid search reaches the gateway, got %d calls", gw.calls)
	}
	last, ok := store.Last()
	if !ok {
		t.Fatal("expected a last search")
	}
	if last.Key != "muse" {
		t.Errorf("last key = %q, want muse", last.Key)
	}
}
