package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/mdlens/internal/state"
)

// formatResultStatus describes the search results, or "" without a query.
func formatResultStatus(state *statepkg.AppState) string {
	if state.Session == nil || state.Session.Query() == "" {
		return ""
	}
	n := state.ResultCount()
	if n == 0 {
		return "no matches "
	}
	return fmt.Sprintf("%d/%s ", state.FocusedResult()+1, formatCompactNumber(n))
}

// formatDocumentStatus summarizes the document and the scroll position.
func formatDocumentStatus(state *statepkg.AppState) string {
	parts := []string{}
	if snap := state.Snapshot(); snap != nil {
		parts = append(parts,
			formatCompactNumber(snap.Words())+" words",
			formatCompactNumber(snap.Chars())+" chars")
	}
	if pct, ok := scrollPercent(state); ok {
		parts = append(parts, fmt.Sprintf("%d%%", pct))
	}
	parts = append(parts, buildFooterHelpSegments(state)...)
	return " " + strings.Join(parts, " · ")
}

func scrollPercent(state *statepkg.AppState) (int, bool) {
	if state.Layout == nil || state.Layout.Rows <= state.ViewportHeight() {
		return 0, false
	}
	maxScroll := state.MaxScroll()
	return state.ScrollOffset * 100 / maxScroll, true
}

func formatCompactNumber(n int) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000.0)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000.0)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000.0)
	default:
		return fmt.Sprintf("%d", n)
	}
}
