package app

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdlens/internal/document"
	fsutil "github.com/kk-code-lab/mdlens/internal/fs"
	"github.com/kk-code-lab/mdlens/internal/markup"
	statepkg "github.com/kk-code-lab/mdlens/internal/state"
)

func TestDocumentLoaderPublishesVersions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("one\r\ntwo"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	load := documentLoader(document.NewHolder(markup.NewParser()), 0)

	first, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if first.Source != "one\ntwo" {
		t.Fatalf("expected normalized line endings, got %q", first.Source)
	}

	same, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if same != first {
		t.Fatalf("unchanged file should keep version %d, got %d", first.Version, same.Version)
	}

	if err := os.WriteFile(path, []byte("three"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	second, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if second.Version <= first.Version {
		t.Fatalf("expected increasing versions, got %d then %d", first.Version, second.Version)
	}
}

func TestDocumentLoaderRejectsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 32)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	load := documentLoader(document.NewHolder(markup.NewParser()), 16)
	if _, err := load(path); !errors.Is(err, fsutil.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestNewApplicationSizesStateFromScreen(t *testing.T) {
	app, path := newTestApplicationWithFile(t, "# Title")
	w, h := app.screen.Size()
	if app.state.ScreenWidth != w || app.state.ScreenHeight != h {
		t.Fatalf("state size %dx%d, screen %dx%d", app.state.ScreenWidth, app.state.ScreenHeight, w, h)
	}
	if app.state.Layout == nil {
		t.Fatalf("expected layout to be built")
	}
	if app.state.Path != path {
		t.Fatalf("path = %q, want %q", app.state.Path, path)
	}
}

func TestKeyEventsFlowThroughReducer(t *testing.T) {
	app, _ := newTestApplicationWithFile(t, "a cat and a cat")

	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, '/', 0),
		tcell.NewEventKey(tcell.KeyRune, 'c', 0),
		tcell.NewEventKey(tcell.KeyRune, 'a', 0),
		tcell.NewEventKey(tcell.KeyRune, 't', 0),
		tcell.NewEventKey(tcell.KeyEnter, 0, 0),
		tcell.NewEventKey(tcell.KeyRune, 'n', 0),
	} {
		if !app.handleEvent(ev) {
			t.Fatalf("event %s not handled", ev.Name())
		}
		app.processActions()
	}

	if app.state.SearchActive {
		t.Fatalf("expected prompt to close on enter")
	}
	if got := app.state.ResultCount(); got != 2 {
		t.Fatalf("expected 2 results, got %d", got)
	}
	if got := app.state.FocusedResult(); got != 1 {
		t.Fatalf("expected focus on the second result, got %d", got)
	}
}

func TestQuitKeyStopsLoop(t *testing.T) {
	app, _ := newTestApplicationWithFile(t, "text")
	app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	if !app.shouldQuit {
		t.Fatalf("expected q to stop the loop")
	}
}

func TestMouseWheelScrolls(t *testing.T) {
	app, _ := newTestApplicationWithFile(t, strings.Repeat("line\n", 100))

	if !app.handleEvent(tcell.NewEventMouse(0, 2, tcell.WheelDown, 0)) {
		t.Fatalf("wheel event not handled")
	}
	app.processActions()
	if app.state.ScrollOffset != 1 {
		t.Fatalf("expected scroll offset 1, got %d", app.state.ScrollOffset)
	}

	app.handleEvent(tcell.NewEventMouse(0, 2, tcell.WheelUp, 0))
	app.processActions()
	if app.state.ScrollOffset != 0 {
		t.Fatalf("expected scroll offset 0, got %d", app.state.ScrollOffset)
	}

	if app.handleEvent(tcell.NewEventMouse(0, 2, tcell.Button1, 0)) {
		t.Fatalf("clicks should not trigger a redraw")
	}
}

func TestReloadRerunsQuery(t *testing.T) {
	app, path := newTestApplicationWithFile(t, "one cat")
	app.handleAction(statepkg.SearchStartAction{})
	for _, r := range "cat" {
		app.handleAction(statepkg.SearchCharAction{Char: r})
	}
	app.handleAction(statepkg.SearchCommitAction{})

	if err := os.WriteFile(path, []byte("cat, cat, cat"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	app.handleAction(statepkg.ReloadAction{})
	loaded := waitForAction(t, app)
	if _, ok := loaded.(statepkg.DocumentLoadedAction); !ok {
		t.Fatalf("expected DocumentLoadedAction, got %T", loaded)
	}
	app.handleAction(loaded)

	if got := app.state.ResultCount(); got != 3 {
		t.Fatalf("expected 3 results after reload, got %d", got)
	}
	if app.state.LastError != nil {
		t.Fatalf("unexpected error: %v", app.state.LastError)
	}
}

func TestReloadFailureSetsLastError(t *testing.T) {
	app, path := newTestApplicationWithFile(t, "text")
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	app.handleAction(statepkg.ReloadAction{})
	failed := waitForAction(t, app)
	app.handleAction(failed)

	if app.state.LastError == nil {
		t.Fatalf("expected LastError after failed reload")
	}
	if got := app.Snapshot().Source; got != "text" {
		t.Fatalf("expected previous document to stay, got %q", got)
	}
}

func TestQuitActionStopsLoop(t *testing.T) {
	app, _ := newTestApplicationWithFile(t, "text")
	if app.handleAction(statepkg.QuitAction{}) {
		t.Fatalf("quit should not request a redraw")
	}
	if !app.shouldQuit {
		t.Fatalf("expected shouldQuit")
	}
}

func TestParseEditorCommand(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"vim", []string{"vim"}},
		{"code --wait", []string{"code", "--wait"}},
		{`"/opt/my editor/bin/ed" -n`, []string{"/opt/my editor/bin/ed", "-n"}},
		{`emacs -nw --eval '(setq x "y")'`, []string{"emacs", "-nw", "--eval", `(setq x "y")`}},
	}
	for _, tt := range tests {
		if got := parseEditorCommand(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("parseEditorCommand(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestDetectEditorCommandPrefersVisual(t *testing.T) {
	env := map[string]string{"VISUAL": "hx", "EDITOR": "nano"}
	lookPath := func(name string) (string, error) {
		return "/usr/bin/" + name, nil
	}

	got, ok := detectEditorCommandInternal("linux", func(k string) string { return env[k] }, lookPath)
	if !ok || !reflect.DeepEqual(got, []string{"/usr/bin/hx"}) {
		t.Fatalf("got %v (%v), want VISUAL", got, ok)
	}
}

func TestDetectEditorCommandFallsBackToDefaults(t *testing.T) {
	lookPath := func(name string) (string, error) {
		if name == "nano" {
			return "/bin/nano", nil
		}
		return "", errors.New("not found")
	}

	got, ok := detectEditorCommandInternal("linux", func(string) string { return "" }, lookPath)
	if !ok || !reflect.DeepEqual(got, []string{"/bin/nano"}) {
		t.Fatalf("got %v (%v), want nano", got, ok)
	}

	if _, ok := detectEditorCommandInternal("linux", func(string) string { return "" }, func(string) (string, error) {
		return "", errors.New("not found")
	}); ok {
		t.Fatalf("expected no editor when nothing resolves")
	}
}
