package document

import "github.com/kk-code-lab/mdlens/internal/search"

// Session tracks a query over one snapshot and which of its results has
// focus. Moving past either end wraps around.
type Session struct {
	snapshot *Snapshot
	result   *Result
	focus    int
}

// NewSession starts an empty session over snap.
func NewSession(snap *Snapshot) *Session {
	return &Session{snapshot: snap}
}

// Snapshot returns the snapshot the session searches.
func (s *Session) Snapshot() *Snapshot {
	return s.snapshot
}

// SetQuery runs query and moves focus to the first result. An empty query
// clears the results.
func (s *Session) SetQuery(query string) error {
	if query == "" {
		s.Clear()
		return nil
	}
	if s.result != nil && s.result.Query == query {
		return nil
	}
	result, err := s.snapshot.Search(query)
	if err != nil {
		return err
	}
	s.result = result
	s.focus = 0
	return nil
}

// Rebase moves the session onto a newer snapshot and reruns the query.
func (s *Session) Rebase(snap *Snapshot) error {
	query := s.Query()
	s.snapshot = snap
	s.result = nil
	s.focus = 0
	return s.SetQuery(query)
}

// Clear drops the query and its results.
func (s *Session) Clear() {
	s.result = nil
	s.focus = 0
}

// Query returns the active query, or "".
func (s *Session) Query() string {
	if s.result == nil {
		return ""
	}
	return s.result.Query
}

// Result returns the active result, or nil.
func (s *Session) Result() *Result {
	return s.result
}

// Len returns the number of results.
func (s *Session) Len() int {
	return s.result.Len()
}

// Position returns the focused result index, or -1 without results.
func (s *Session) Position() int {
	if s.Len() == 0 {
		return -1
	}
	return s.focus
}

// Focused returns the focused occurrence.
func (s *Session) Focused() (search.Interval, bool) {
	if s.Len() == 0 {
		return search.Interval{}, false
	}
	return s.result.Occurrences[s.focus], true
}

// FocusedPieces returns the focused occurrence split over blocks.
func (s *Session) FocusedPieces() []Piece {
	iv, ok := s.Focused()
	if !ok {
		return nil
	}
	pieces, err := s.snapshot.Pieces(iv)
	if err != nil {
		return nil
	}
	return pieces
}

// Next focuses the following result and returns its index.
func (s *Session) Next() int {
	return s.move(1)
}

// Prev focuses the preceding result and returns its index.
func (s *Session) Prev() int {
	return s.move(-1)
}

func (s *Session) move(delta int) int {
	n := s.Len()
	if n == 0 {
		return -1
	}
	s.focus = ((s.focus+delta)%n + n) % n
	return s.focus
}
