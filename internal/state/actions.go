package state

import "github.com/kk-code-lab/mdlens/internal/document"

// Action is the base interface for all state mutations
type Action interface{}

// ===== SCROLL ACTIONS =====

type ScrollUpAction struct{}
type ScrollDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollToStartAction struct{}
type ScrollToEndAction struct{}

// ===== SEARCH ACTIONS =====

type SearchStartAction struct{}
type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}
type SearchDeleteWordAction struct{}
type SearchMoveCursorAction struct {
	Direction string // "left", "right", "home", "end"
}
type SearchCommitAction struct{}
type SearchClearAction struct{}
type SearchNextAction struct{}
type SearchPrevAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== DOCUMENT ACTIONS =====

type ReloadAction struct{}
type OpenEditorAction struct{}

// DocumentLoadedAction replaces the viewed snapshot, keeping the query.
type DocumentLoadedAction struct {
	Snapshot *document.Snapshot
}

type DocumentLoadFailedAction struct {
	Err error
}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
