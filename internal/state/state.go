package state

import (
	"github.com/kk-code-lab/mdlens/internal/document"
	"github.com/kk-code-lab/mdlens/internal/textutil"
)

// ContentMargin is the blank column kept on both sides of the document.
const ContentMargin = 1

// AppState is the single source of truth of the viewer.
type AppState struct {
	// Document
	Path     string
	Session  *document.Session
	Layout   *DocumentLayout
	TabWidth int

	// Viewport
	ScrollOffset int

	// Search prompt
	SearchActive    bool
	SearchQuery     string
	SearchCursorPos int

	HelpVisible     bool
	EditorAvailable bool // Whether an editor command is available for 'e'

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Error state
	LastError error

	dispatchAction func(Action)
}

// NewAppState returns the state for viewing snap from path.
func NewAppState(path string, snap *document.Snapshot, tabWidth int) *AppState {
	if tabWidth <= 0 {
		tabWidth = textutil.DefaultTabWidth
	}
	return &AppState{
		Path:     path,
		Session:  document.NewSession(snap),
		TabWidth: tabWidth,
	}
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

// Snapshot returns the document being viewed.
func (s *AppState) Snapshot() *document.Snapshot {
	if s.Session == nil {
		return nil
	}
	return s.Session.Snapshot()
}

// ContentWidth returns the columns available to document text.
func (s *AppState) ContentWidth() int {
	return max(1, s.ScreenWidth-2*ContentMargin)
}

// ViewportHeight returns the rows between the header and the status line.
func (s *AppState) ViewportHeight() int {
	return max(1, s.ScreenHeight-2)
}

// MaxScroll returns the largest useful ScrollOffset.
func (s *AppState) MaxScroll() int {
	if s.Layout == nil {
		return 0
	}
	return max(0, s.Layout.Rows-s.ViewportHeight())
}

// ResultCount returns the number of search results.
func (s *AppState) ResultCount() int {
	if s.Session == nil {
		return 0
	}
	return s.Session.Len()
}

// FocusedResult returns the focused result index, or -1.
func (s *AppState) FocusedResult() int {
	if s.Session == nil {
		return -1
	}
	return s.Session.Position()
}

func (s *AppState) relayout() {
	if s.Layout != nil && s.Layout.Width == s.ContentWidth() {
		return
	}
	s.Layout = BuildLayout(s.Snapshot(), s.ContentWidth(), s.TabWidth)
	s.clampScroll()
}

func (s *AppState) clampScroll() {
	s.ScrollOffset = min(max(s.ScrollOffset, 0), s.MaxScroll())
}

// revealFocused scrolls the least distance that brings the focused result
// into the viewport.
func (s *AppState) revealFocused() {
	if s.Session == nil || s.Layout == nil {
		return
	}
	rect, ok := s.Layout.PiecesBounds(s.Session.FocusedPieces())
	if !ok {
		return
	}
	height := s.ViewportHeight()
	switch {
	case rect.Top < s.ScrollOffset:
		s.ScrollOffset = rect.Top
	case rect.Bottom > s.ScrollOffset+height:
		s.ScrollOffset = min(rect.Top, rect.Bottom-height)
	}
	s.clampScroll()
}
