package render

import statepkg "github.com/kk-code-lab/mdlens/internal/state"

// buildFooterHelpSegments assembles context-aware key hints for the status
// line.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil || state.SearchActive {
		return nil
	}
	if state.Session != nil && state.Session.Query() != "" {
		return []string{"n/N: next/prev", "Esc: clear", "?: help"}
	}
	return []string{"/: search", "?: help"}
}
