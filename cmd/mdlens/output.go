package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/kk-code-lab/mdlens/internal/blocks"
	"github.com/kk-code-lab/mdlens/internal/search"
	"github.com/kk-code-lab/mdlens/internal/textutil"
	"golang.org/x/term"
)

// printer writes command output. On a terminal lines are truncated to its
// width and styled; otherwise output is plain and untruncated.
type printer struct {
	out   io.Writer
	width int

	index lipgloss.Style
	kind  lipgloss.Style
	dim   lipgloss.Style
	match lipgloss.Style
}

func newPrinter(out io.Writer) *printer {
	r := lipgloss.NewRenderer(out)
	return &printer{
		out:   out,
		width: terminalWidth(out),
		index: r.NewStyle().Width(4).Align(lipgloss.Right),
		kind:  r.NewStyle().Width(6).Foreground(lipgloss.Color("6")).Bold(true),
		dim:   r.NewStyle().Faint(true),
		match: r.NewStyle().Reverse(true),
	}
}

// terminalWidth returns the width of out when it is a terminal, else 0.
func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

func (p *printer) fit(text string, used int) string {
	text = textutil.SanitizeTerminalText(textutil.ExpandTabs(text, textutil.DefaultTabWidth))
	if p.width <= 0 {
		return text
	}
	return textutil.Truncate(text, p.width-used)
}

func span(iv search.Interval) string {
	return fmt.Sprintf("[%d,%d)", iv.Start, iv.End)
}

func (p *printer) block(i int, b blocks.Block, preview string) {
	bounds := span(b.Bounds())
	prefix := fmt.Sprintf("%4d  %-6s  %-12s  ", i, b.Kind, bounds)
	fmt.Fprintf(p.out, "%s  %s  %s  %s\n",
		p.index.Render(fmt.Sprint(i)),
		p.kind.Render(b.Kind.String()),
		p.dim.Render(fmt.Sprintf("%-12s", bounds)),
		p.fit(preview, textutil.DisplayWidth(prefix)))
}

func (p *printer) summary(count int, query string) {
	noun := "occurrences"
	if count == 1 {
		noun = "occurrence"
	}
	fmt.Fprintf(p.out, "%d %s of %q\n", count, noun, query)
}

func (p *printer) occurrence(occ search.Interval, plain []rune) {
	label := fmt.Sprintf("%-12s", span(occ))
	before, match, after := occurrenceContext(plain, occ)
	before = textutil.SanitizeTerminalText(before)
	match = textutil.SanitizeTerminalText(match)
	after = textutil.SanitizeTerminalText(after)

	if p.width > 0 {
		room := p.width - textutil.DisplayWidth(label) - 4
		// Keep the match in view by dropping leading context first.
		for textutil.DisplayWidth(before)+textutil.DisplayWidth(match) > room && before != "" {
			_, size := utf8.DecodeRuneInString(before)
			before = before[size:]
		}
		after = textutil.Truncate(after, room-textutil.DisplayWidth(before)-textutil.DisplayWidth(match))
	}
	fmt.Fprintf(p.out, "  %s  %s%s%s\n", p.dim.Render(label), before, p.match.Render(match), after)
}

func (p *printer) blockIntervals(part search.BlockIntervals, b blocks.Block) {
	spans := make([]string, len(part.Intervals))
	for i, iv := range part.Intervals {
		spans[i] = span(iv)
	}
	fmt.Fprintf(p.out, "  block %s %s @%d: %s\n",
		p.index.UnsetWidth().Render(fmt.Sprint(part.Block)),
		p.kind.UnsetWidth().Render(b.Kind.String()),
		b.Offset,
		strings.Join(spans, " "))
}
