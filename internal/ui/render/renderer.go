package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdlens/internal/blocks"
	"github.com/kk-code-lab/mdlens/internal/geometry"
	"github.com/kk-code-lab/mdlens/internal/search"
	statepkg "github.com/kk-code-lab/mdlens/internal/state"
	textutil "github.com/kk-code-lab/mdlens/internal/textutil"
)

const imageLabelPrefix = "▣ "

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	r.screen.HideCursor()

	w, h := r.screen.Size()
	if state.HelpVisible {
		r.drawHelpOverlay(w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	r.drawDocument(state, w, h)
	r.drawStatusLine(state, w, h)
	r.screen.Show()
}

// drawHeader renders the top bar with the title and document path.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	r.fillRow(0, w, 0, ' ', style)

	endX := r.drawTextLine(0, 0, w, "mdlens", style.Bold(true))
	if endX+1 >= w {
		return
	}
	right := ""
	if snap := state.Snapshot(); snap != nil && snap.Version > 1 {
		right = fmt.Sprintf(" v%d", snap.Version)
	}
	available := w - endX - 1 - textutil.DisplayWidth(right)
	path := textutil.Truncate(textutil.SanitizeTerminalText(state.Path), available)
	endX = r.drawTextLine(endX+1, 0, available, path, style)
	if right != "" {
		r.drawTextLine(w-textutil.DisplayWidth(right), 0, textutil.DisplayWidth(right), right, style)
	}
}

// drawDocument paints the visible rows of every block, then the search
// highlights over them.
func (r *Renderer) drawDocument(state *statepkg.AppState, w, h int) {
	layout := state.Layout
	if layout == nil {
		return
	}
	view := viewport{top: state.ScrollOffset, height: max(0, h-2), left: statepkg.ContentMargin, right: w - statepkg.ContentMargin}

	start := 0
	if first, ok := layout.BlockAt(view.top); ok {
		start = first.Index
	}
	for i := start; i < len(layout.Blocks); i++ {
		bl := &layout.Blocks[i]
		if bl.Row >= view.top+view.height {
			break
		}
		if bl.Row+bl.Rows <= view.top {
			continue
		}
		r.drawBlock(bl, view, w)
	}
	r.drawHighlights(state, view)
}

// viewport maps document rows to screen rows below the header.
type viewport struct {
	top    int
	height int
	left   int
	right  int
}

func (v viewport) screenRow(row int) (int, bool) {
	if row < v.top || row >= v.top+v.height {
		return 0, false
	}
	return row - v.top + 1, true
}

func (r *Renderer) drawBlock(bl *statepkg.BlockLayout, view viewport, w int) {
	bs := r.styleBlock(bl.Block)
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)

	if bl.Block.Kind == blocks.KindCode {
		codeStyle := base.Background(r.theme.CodeBlockBg)
		for row := bl.Row; row < bl.Row+bl.Rows; row++ {
			if y, ok := view.screenRow(row); ok {
				r.fillRow(0, w, y, ' ', codeStyle)
			}
		}
	}

	if bl.Labels > 0 {
		if y, ok := view.screenRow(bl.Row); ok {
			r.drawImageLabel(bl, view, y)
		}
	}

	for line := 0; line < bl.TextRows(); line++ {
		y, ok := view.screenRow(bl.Wrap.Row() + line)
		if !ok {
			continue
		}
		start, end := bl.Wrap.LineRange(line)
		if start == end && bs.rules[start] {
			r.fillRow(view.left, view.right, y, '─', base.Foreground(r.theme.RuleFg))
			continue
		}
		for _, cell := range bl.Wrap.Cells(line) {
			x := view.left + cell.Col
			if x >= view.right {
				break
			}
			style := bs.at(cell.Offset)
			r.screen.SetContent(x, y, textutil.CellRune(cell.Rune), nil, style)
			if cell.Rune == '\t' {
				r.fillRow(x+1, min(x+cell.Width, view.right), y, ' ', style)
			}
		}
	}
}

func (r *Renderer) drawImageLabel(bl *statepkg.BlockLayout, view viewport, y int) {
	el, ok := bl.Block.Element()
	if !ok {
		return
	}
	label := imageLabelPrefix + el.Alt
	if el.URL != "" {
		label += " (" + el.URL + ")"
	}
	width := view.right - view.left
	label = textutil.Truncate(textutil.SanitizeTerminalText(label), width)
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.ImageFg)
	r.drawTextLine(view.left, y, width, label, style)
}

// drawHighlights restyles the cells under every result rectangle; the
// focused result is painted last so it wins where results overlap.
func (r *Renderer) drawHighlights(state *statepkg.AppState, view viewport) {
	if state.Session == nil || state.Session.Len() == 0 {
		return
	}
	layout := state.Layout
	matchStyle := func(s tcell.Style) tcell.Style { return s.Background(r.theme.MatchBg).Foreground(r.theme.MatchFg) }
	focusStyle := func(s tcell.Style) tcell.Style { return s.Background(r.theme.FocusBg).Foreground(r.theme.FocusFg) }

	for _, part := range state.Session.Result().Blocks {
		// Overlapping occurrences are painted once.
		for _, region := range layout.RegionsAll(part.Block, search.MergeSpans(part.Intervals)) {
			r.paintRegion(region.Rect, view, matchStyle)
		}
	}
	for _, piece := range state.Session.FocusedPieces() {
		for _, region := range layout.Regions(piece.Block, piece.Interval) {
			r.paintRegion(region.Rect, view, focusStyle)
		}
	}
}

// paintRegion applies restyle to the cells of rect. A rectangle with no
// width, such as a match on a line break, still marks one cell.
func (r *Renderer) paintRegion(rect geometry.Rect, view viewport, restyle func(tcell.Style) tcell.Style) {
	right := max(rect.Right, rect.Left+1)
	for row := rect.Top; row < rect.Bottom; row++ {
		y, ok := view.screenRow(row)
		if !ok {
			continue
		}
		for x := view.left + rect.Left; x < view.left+right && x < view.right; x++ {
			mainc, combc, style, width := r.screen.GetContent(x, y)
			r.screen.SetContent(x, y, mainc, combc, restyle(style))
			if width > 1 {
				x += width - 1
			}
		}
	}
}

func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	if h < 2 {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.StatusBg).Foreground(r.theme.StatusFg)
	r.fillRow(0, w, y, ' ', style)

	right := formatResultStatus(state)
	rightWidth := textutil.DisplayWidth(right)
	leftWidth := max(0, w-rightWidth-1)

	switch {
	case state.SearchActive:
		prompt := "/" + textutil.SanitizeTerminalText(state.SearchQuery)
		r.drawTextLine(0, y, leftWidth, textutil.Truncate(prompt, leftWidth), style)
		query := []rune(state.SearchQuery)
		cursor := 1 + textutil.DisplayWidth(string(query[:min(max(state.SearchCursorPos, 0), len(query))]))
		if cursor < leftWidth {
			r.screen.ShowCursor(cursor, y)
		}
	case state.LastError != nil:
		msg := textutil.Truncate(textutil.SanitizeTerminalText("Error: "+state.LastError.Error()), leftWidth)
		r.drawTextLine(0, y, leftWidth, msg, style.Foreground(r.theme.ErrorFg))
	default:
		r.drawTextLine(0, y, leftWidth, textutil.Truncate(formatDocumentStatus(state), leftWidth), style)
	}

	if right != "" && rightWidth <= w {
		r.drawTextLine(w-rightWidth, y, rightWidth, right, style.Bold(true))
	}
}
