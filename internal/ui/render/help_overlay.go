package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	textutil "github.com/kk-code-lab/mdlens/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

var helpOverlaySections = []helpOverlaySection{
	{
		title: "Scrolling",
		entries: []helpOverlayEntry{
			{keys: "j/k or ↑/↓", desc: "Scroll one line"},
			{keys: "space/b", desc: "Page down/up"},
			{keys: "PgDn/PgUp", desc: "Page down/up"},
			{keys: "g/G", desc: "Top/bottom"},
		},
	},
	{
		title: "Search",
		entries: []helpOverlayEntry{
			{keys: "/", desc: "Search the document (live)"},
			{keys: "↵", desc: "Close the prompt, keep results"},
			{keys: "n/N", desc: "Next/previous result"},
			{keys: "Esc", desc: "Clear the search"},
		},
	},
	{
		title: "Document",
		entries: []helpOverlayEntry{
			{keys: "r", desc: "Reload from disk"},
			{keys: "e", desc: "Edit in $EDITOR, then reload"},
			{keys: "Ctrl+Z", desc: "Suspend to the shell"},
		},
	},
	{
		title: "Exit",
		entries: []helpOverlayEntry{
			{keys: "q", desc: "Quit"},
			{keys: "Ctrl+C", desc: "Quit immediately"},
			{keys: "?", desc: "Close this help"},
		},
	},
}

func buildHelpOverlayLines() []string {
	lines := make([]string, 0, 24)
	for i, section := range helpOverlaySections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}
	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(0, w, y, ' ', baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	titleStart := 0
	if titleWidth := textutil.DisplayWidth(title); w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	for _, line := range buildHelpOverlayLines() {
		if row >= h-1 {
			break
		}
		text := textutil.Truncate(strings.TrimRight(line, " "), w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		footer := textutil.Truncate("? toggle · Esc/q close", w)
		r.drawTextLine(0, h-1, w, footer, headerStyle)
	}
}
