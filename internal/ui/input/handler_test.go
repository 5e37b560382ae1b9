package input

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/mdlens/internal/state"
)

func processKey(t *testing.T, state *statepkg.AppState, ev *tcell.EventKey) (statepkg.Action, bool) {
	t.Helper()
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(state)

	keepRunning := handler.ProcessEvent(ev)
	select {
	case action := <-actionChan:
		return action, keepRunning
	default:
		return nil, keepRunning
	}
}

func TestNormalModeKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{"j scrolls down", tcell.NewEventKey(tcell.KeyRune, 'j', 0), statepkg.ScrollDownAction{}},
		{"k scrolls up", tcell.NewEventKey(tcell.KeyRune, 'k', 0), statepkg.ScrollUpAction{}},
		{"arrow down", tcell.NewEventKey(tcell.KeyDown, 0, 0), statepkg.ScrollDownAction{}},
		{"space pages down", tcell.NewEventKey(tcell.KeyRune, ' ', 0), statepkg.ScrollPageDownAction{}},
		{"b pages up", tcell.NewEventKey(tcell.KeyRune, 'b', 0), statepkg.ScrollPageUpAction{}},
		{"page down key", tcell.NewEventKey(tcell.KeyPgDn, 0, 0), statepkg.ScrollPageDownAction{}},
		{"g to start", tcell.NewEventKey(tcell.KeyRune, 'g', 0), statepkg.ScrollToStartAction{}},
		{"G to end", tcell.NewEventKey(tcell.KeyRune, 'G', 0), statepkg.ScrollToEndAction{}},
		{"home to start", tcell.NewEventKey(tcell.KeyHome, 0, 0), statepkg.ScrollToStartAction{}},
		{"slash opens prompt", tcell.NewEventKey(tcell.KeyRune, '/', 0), statepkg.SearchStartAction{}},
		{"n next result", tcell.NewEventKey(tcell.KeyRune, 'n', 0), statepkg.SearchNextAction{}},
		{"N previous result", tcell.NewEventKey(tcell.KeyRune, 'N', 0), statepkg.SearchPrevAction{}},
		{"escape clears results", tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.SearchClearAction{}},
		{"r reloads", tcell.NewEventKey(tcell.KeyRune, 'r', 0), statepkg.ReloadAction{}},
		{"e without editor is ignored", tcell.NewEventKey(tcell.KeyRune, 'e', 0), nil},
		{"ctrl-z suspends", tcell.NewEventKey(tcell.KeyCtrlZ, 0, 0), statepkg.SuspendAction{}},
		{"question mark toggles help", tcell.NewEventKey(tcell.KeyRune, '?', 0), statepkg.HelpToggleAction{}},
		{"enter outside prompt is ignored", tcell.NewEventKey(tcell.KeyEnter, 0, 0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, keepRunning := processKey(t, &statepkg.AppState{}, tt.ev)
			if !keepRunning {
				t.Fatalf("key should not quit")
			}
			if !reflect.DeepEqual(action, tt.want) {
				t.Fatalf("got %#v, want %#v", action, tt.want)
			}
		})
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', 0),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, 0),
	} {
		action, keepRunning := processKey(t, &statepkg.AppState{}, ev)
		if keepRunning {
			t.Fatalf("%v should quit", ev.Name())
		}
		if _, ok := action.(statepkg.QuitAction); !ok {
			t.Fatalf("expected QuitAction, got %T", action)
		}
	}
}

func TestEditorKeyNeedsEditor(t *testing.T) {
	action, _ := processKey(t, &statepkg.AppState{EditorAvailable: true}, tcell.NewEventKey(tcell.KeyRune, 'e', 0))
	if _, ok := action.(statepkg.OpenEditorAction); !ok {
		t.Fatalf("expected OpenEditorAction, got %T", action)
	}
}

func TestSearchPromptTakesRunes(t *testing.T) {
	state := &statepkg.AppState{SearchActive: true}

	for _, r := range []rune{'q', 'n', '/', 'G'} {
		action, keepRunning := processKey(t, state, tcell.NewEventKey(tcell.KeyRune, r, 0))
		if !keepRunning {
			t.Fatalf("%q should not quit while typing a query", r)
		}
		if got, ok := action.(statepkg.SearchCharAction); !ok || got.Char != r {
			t.Fatalf("%q produced %#v", r, action)
		}
	}
}

func TestSearchPromptEditingKeys(t *testing.T) {
	state := &statepkg.AppState{SearchActive: true}

	tests := []struct {
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{tcell.NewEventKey(tcell.KeyEnter, 0, 0), statepkg.SearchCommitAction{}},
		{tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.SearchClearAction{}},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), statepkg.SearchBackspaceAction{}},
		{tcell.NewEventKey(tcell.KeyCtrlW, 0, 0), statepkg.SearchDeleteWordAction{}},
		{tcell.NewEventKey(tcell.KeyLeft, 0, 0), statepkg.SearchMoveCursorAction{Direction: "left"}},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl), statepkg.SearchMoveCursorAction{Direction: "word-right"}},
		{tcell.NewEventKey(tcell.KeyHome, 0, 0), statepkg.SearchMoveCursorAction{Direction: "home"}},
		{tcell.NewEventKey(tcell.KeyEnd, 0, 0), statepkg.SearchMoveCursorAction{Direction: "end"}},
	}
	for _, tt := range tests {
		action, _ := processKey(t, state, tt.ev)
		if !reflect.DeepEqual(action, tt.want) {
			t.Fatalf("%s produced %#v, want %#v", tt.ev.Name(), action, tt.want)
		}
	}
}

func TestEscapeHidesHelpFirst(t *testing.T) {
	state := &statepkg.AppState{HelpVisible: true, SearchActive: true}
	action, _ := processKey(t, state, tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	if _, ok := action.(statepkg.HelpHideAction); !ok {
		t.Fatalf("expected HelpHideAction, got %T", action)
	}

	action, _ = processKey(t, state, tcell.NewEventKey(tcell.KeyRune, 'j', 0))
	if action != nil {
		t.Fatalf("keys other than help toggles are swallowed, got %T", action)
	}
}

func TestResizeEmitsAction(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.ProcessEvent(tcell.NewEventResize(80, 24))

	got := <-actionChan
	if got != (statepkg.ResizeAction{Width: 80, Height: 24}) {
		t.Fatalf("got %#v", got)
	}
}
