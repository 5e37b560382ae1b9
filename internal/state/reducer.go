package state

import (
	"unicode"

	"github.com/kk-code-lab/mdlens/internal/document"
)

// LoadFunc reads and parses the document at path into a new snapshot.
type LoadFunc func(path string) (*document.Snapshot, error)

// StateReducer applies actions to an AppState.
type StateReducer struct {
	load LoadFunc
}

// NewStateReducer creates a reducer. load may be nil, which disables
// ReloadAction.
func NewStateReducer(load LoadFunc) *StateReducer {
	return &StateReducer{load: load}
}

func isSearchWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func previousWordBoundary(runes []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	i := pos - 1
	for i >= 0 && !isSearchWordChar(runes[i]) {
		i--
	}
	for i >= 0 && isSearchWordChar(runes[i]) {
		i--
	}
	return i + 1
}

func nextWordBoundary(runes []rune, pos int) int {
	if pos >= len(runes) {
		return len(runes)
	}
	if pos < 0 {
		pos = 0
	}

	i := pos
	for i < len(runes) && !isSearchWordChar(runes[i]) {
		i++
	}
	for i < len(runes) && isSearchWordChar(runes[i]) {
		i++
	}
	return i
}

// Reduce applies action to state. Errors are also meant for the status
// line; the state stays usable after any of them.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.relayout()
		state.revealFocused()
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		state.HelpVisible = false
		return state, nil

	// ===== SCROLL =====

	case ScrollUpAction:
		state.ScrollOffset--
		state.clampScroll()
		return state, nil

	case ScrollDownAction:
		state.ScrollOffset++
		state.clampScroll()
		return state, nil

	case ScrollPageUpAction:
		state.ScrollOffset -= max(1, state.ViewportHeight()-1)
		state.clampScroll()
		return state, nil

	case ScrollPageDownAction:
		state.ScrollOffset += max(1, state.ViewportHeight()-1)
		state.clampScroll()
		return state, nil

	case ScrollToStartAction:
		state.ScrollOffset = 0
		return state, nil

	case ScrollToEndAction:
		state.ScrollOffset = state.MaxScroll()
		return state, nil

	// ===== SEARCH =====

	case SearchStartAction:
		state.SearchActive = true
		state.SearchCursorPos = len([]rune(state.SearchQuery))
		return state, nil

	case SearchCharAction:
		if !state.SearchActive {
			return state, nil
		}
		runes := []rune(state.SearchQuery)
		cursor := min(max(state.SearchCursorPos, 0), len(runes))

		var buffer []rune
		buffer = append(buffer, runes[:cursor]...)
		buffer = append(buffer, a.Char)
		buffer = append(buffer, runes[cursor:]...)

		state.SearchCursorPos = cursor + 1
		return state, r.setQuery(state, string(buffer))

	case SearchBackspaceAction:
		if !state.SearchActive {
			return state, nil
		}
		runes := []rune(state.SearchQuery)
		cursor := min(max(state.SearchCursorPos, 0), len(runes))
		if cursor == 0 {
			return state, nil
		}
		buffer := append([]rune{}, runes[:cursor-1]...)
		buffer = append(buffer, runes[cursor:]...)

		state.SearchCursorPos = cursor - 1
		return state, r.setQuery(state, string(buffer))

	case SearchDeleteWordAction:
		if !state.SearchActive {
			return state, nil
		}
		runes := []rune(state.SearchQuery)
		cursor := min(max(state.SearchCursorPos, 0), len(runes))
		if cursor == 0 {
			return state, nil
		}
		start := previousWordBoundary(runes, cursor)
		buffer := append([]rune{}, runes[:start]...)
		buffer = append(buffer, runes[cursor:]...)

		state.SearchCursorPos = start
		return state, r.setQuery(state, string(buffer))

	case SearchMoveCursorAction:
		if !state.SearchActive {
			return state, nil
		}
		runes := []rune(state.SearchQuery)
		switch a.Direction {
		case "left":
			if state.SearchCursorPos > 0 {
				state.SearchCursorPos--
			}
		case "right":
			if state.SearchCursorPos < len(runes) {
				state.SearchCursorPos++
			}
		case "word-left":
			state.SearchCursorPos = previousWordBoundary(runes, state.SearchCursorPos)
		case "word-right":
			state.SearchCursorPos = nextWordBoundary(runes, state.SearchCursorPos)
		case "home":
			state.SearchCursorPos = 0
		case "end":
			state.SearchCursorPos = len(runes)
		}
		return state, nil

	case SearchCommitAction:
		state.SearchActive = false
		return state, nil

	case SearchClearAction:
		state.SearchActive = false
		state.SearchCursorPos = 0
		return state, r.setQuery(state, "")

	case SearchNextAction:
		if state.Session.Next() >= 0 {
			state.revealFocused()
		}
		return state, nil

	case SearchPrevAction:
		if state.Session.Prev() >= 0 {
			state.revealFocused()
		}
		return state, nil

	// ===== DOCUMENT =====

	case ReloadAction:
		r.reload(state)
		return state, nil

	case DocumentLoadedAction:
		if a.Snapshot == nil {
			return state, nil
		}
		err := state.Session.Rebase(a.Snapshot)
		state.Layout = nil
		state.relayout()
		state.revealFocused()
		state.LastError = nil
		return state, err

	case DocumentLoadFailedAction:
		return state, a.Err
	}

	return state, nil
}

func (r *StateReducer) setQuery(state *AppState, query string) error {
	state.SearchQuery = query
	if err := state.Session.SetQuery(query); err != nil {
		return err
	}
	state.revealFocused()
	return nil
}

// reload reads the document off the loop goroutine and reports back
// through the dispatch hook.
func (r *StateReducer) reload(state *AppState) {
	dispatch := state.dispatchAction
	if r.load == nil || dispatch == nil || state.Path == "" {
		return
	}
	path := state.Path
	go func() {
		snap, err := r.load(path)
		if err != nil {
			dispatch(DocumentLoadFailedAction{Err: err})
			return
		}
		dispatch(DocumentLoadedAction{Snapshot: snap})
	}()
}
