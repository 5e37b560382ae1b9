package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 4

const ellipsis = "…"

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		if ru == '\n' {
			builder.WriteRune(ru)
			column = 0
			continue
		}
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += RuneCells(ru)
	}
	return builder.String()
}

// RuneCells returns the number of terminal cells a rune is drawn in. Runes
// the terminal reports as zero-width still get their own cell.
func RuneCells(ru rune) int {
	return max(1, runewidth.RuneWidth(ru))
}

// DisplayWidth reports the printable width of text, measuring grapheme
// clusters so emoji sequences count once.
func DisplayWidth(text string) int {
	return uniseg.StringWidth(text)
}

// Truncate shortens text to at most width cells, cutting between grapheme
// clusters and ending with an ellipsis when anything was dropped.
func Truncate(text string, width int) string {
	if width <= 0 || text == "" {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	if width == 1 {
		return ellipsis
	}

	available := width - 1
	var builder strings.Builder
	used := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > available {
			break
		}
		builder.WriteString(cluster)
		used += w
	}
	builder.WriteString(ellipsis)
	return builder.String()
}
