package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/mdlens/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the event asks the viewer to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	inSearch := ih.state != nil && ih.state.SearchActive
	helpVisible := ih.state != nil && ih.state.HelpVisible

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.HelpHideAction{}
		case tcell.KeyRune:
			if r := ev.Rune(); r == '?' || r == 'q' || r == 'Q' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyEscape:
		ih.actionChan <- statepkg.SearchClearAction{}
		return true

	case tcell.KeyEnter:
		if inSearch {
			ih.actionChan <- statepkg.SearchCommitAction{}
		}
		return true

	case tcell.KeyUp:
		ih.actionChan <- statepkg.ScrollUpAction{}
		return true

	case tcell.KeyDown:
		ih.actionChan <- statepkg.ScrollDownAction{}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.ScrollPageUpAction{}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.ScrollPageDownAction{}
		return true

	case tcell.KeyLeft, tcell.KeyRight:
		if inSearch {
			dir := "left"
			if ev.Key() == tcell.KeyRight {
				dir = "right"
			}
			if ev.Modifiers()&tcell.ModCtrl != 0 {
				dir = "word-" + dir
			}
			ih.actionChan <- statepkg.SearchMoveCursorAction{Direction: dir}
		}
		return true

	case tcell.KeyHome:
		if inSearch {
			ih.actionChan <- statepkg.SearchMoveCursorAction{Direction: "home"}
		} else {
			ih.actionChan <- statepkg.ScrollToStartAction{}
		}
		return true

	case tcell.KeyEnd:
		if inSearch {
			ih.actionChan <- statepkg.SearchMoveCursorAction{Direction: "end"}
		} else {
			ih.actionChan <- statepkg.ScrollToEndAction{}
		}
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if inSearch {
			ih.actionChan <- statepkg.SearchBackspaceAction{}
		}
		return true

	case tcell.KeyCtrlA:
		if inSearch {
			ih.actionChan <- statepkg.SearchMoveCursorAction{Direction: "home"}
		}
		return true

	case tcell.KeyCtrlE:
		if inSearch {
			ih.actionChan <- statepkg.SearchMoveCursorAction{Direction: "end"}
		}
		return true

	case tcell.KeyCtrlW:
		if inSearch {
			ih.actionChan <- statepkg.SearchDeleteWordAction{}
		}
		return true

	case tcell.KeyRune:
		r := ev.Rune()
		// Every rune is query input while the prompt is open, 'q' included.
		if inSearch {
			ih.actionChan <- statepkg.SearchCharAction{Char: r}
			return true
		}

		switch r {
		case 'q', 'Q':
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case 'j':
			ih.actionChan <- statepkg.ScrollDownAction{}
		case 'k':
			ih.actionChan <- statepkg.ScrollUpAction{}
		case ' ', 'f':
			ih.actionChan <- statepkg.ScrollPageDownAction{}
		case 'b':
			ih.actionChan <- statepkg.ScrollPageUpAction{}
		case 'g':
			ih.actionChan <- statepkg.ScrollToStartAction{}
		case 'G':
			ih.actionChan <- statepkg.ScrollToEndAction{}
		case '/':
			ih.actionChan <- statepkg.SearchStartAction{}
		case 'n':
			ih.actionChan <- statepkg.SearchNextAction{}
		case 'N':
			ih.actionChan <- statepkg.SearchPrevAction{}
		case 'r', 'R':
			ih.actionChan <- statepkg.ReloadAction{}
		case 'e', 'E':
			if ih.state != nil && ih.state.EditorAvailable {
				ih.actionChan <- statepkg.OpenEditorAction{}
			}
		case '?':
			ih.actionChan <- statepkg.HelpToggleAction{}
		}
		return true

	default:
		return true
	}
}
