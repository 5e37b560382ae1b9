package geometry

import "github.com/kk-code-lab/mdlens/internal/textutil"

// Cell is one drawn rune of a wrapped line.
type Cell struct {
	Offset int
	Col    int
	Width  int
	Rune   rune
}

// Line is one wrapped line: runes [Start, End) drawn over Width columns.
// End excludes a terminating line break.
type Line struct {
	Start int
	End   int
	Width int
}

type position struct {
	line int
	col  int
}

// WrapLayout lays plain text out on a terminal grid of a fixed column width.
// Lines break after '\n' and before a rune that would overflow the width.
// Every rune takes at least one column and tabs advance to the next tab
// stop. Line i is drawn on row Row+i.
type WrapLayout struct {
	row       int
	lines     []Line
	cells     [][]Cell
	positions []position
}

// NewWrapLayout wraps text to width columns (no wrapping when width <= 0)
// with the given tab width, starting at row.
func NewWrapLayout(text []rune, width, tabWidth, row int) *WrapLayout {
	l := &WrapLayout{row: row, positions: make([]position, len(text)+1)}

	lineStart, col := 0, 0
	var cells []Cell
	closeLine := func(end int) {
		l.lines = append(l.lines, Line{Start: lineStart, End: end, Width: col})
		l.cells = append(l.cells, cells)
		cells = nil
		col = 0
	}

	for i, r := range text {
		if r == '\n' {
			l.positions[i] = position{line: len(l.lines), col: col}
			closeLine(i)
			lineStart = i + 1
			continue
		}

		w := cellWidth(r, col, tabWidth)
		if width > 0 && col > 0 && col+w > width {
			closeLine(i)
			lineStart = i
			w = cellWidth(r, col, tabWidth)
		}
		if r == '\t' && width > 0 && w > width-col {
			w = max(1, width-col)
		}

		l.positions[i] = position{line: len(l.lines), col: col}
		cells = append(cells, Cell{Offset: i, Col: col, Width: w, Rune: r})
		col += w
	}
	l.positions[len(text)] = position{line: len(l.lines), col: col}
	closeLine(len(text))
	return l
}

func cellWidth(r rune, col, tabWidth int) int {
	if r == '\t' {
		if tabWidth <= 0 {
			return 1
		}
		return tabWidth - col%tabWidth
	}
	return textutil.RuneCells(r)
}

func (l *WrapLayout) Position(offset int) (int, int) {
	offset = min(max(offset, 0), len(l.positions)-1)
	p := l.positions[offset]
	return p.line, p.col
}

func (l *WrapLayout) LineExtent(line int) (int, int) {
	top := l.row + line
	return top, top + 1
}

func (l *WrapLayout) LineEdges(line int) (int, int) {
	if line < 0 || line >= len(l.lines) {
		return 0, 0
	}
	return 0, l.lines[line].Width
}

// Lines returns the wrapped lines in order.
func (l *WrapLayout) Lines() []Line {
	return l.lines
}

// LineCount returns the number of wrapped lines; empty text has one.
func (l *WrapLayout) LineCount() int {
	return len(l.lines)
}

// LineRange returns the rune range drawn on line.
func (l *WrapLayout) LineRange(line int) (int, int) {
	if line < 0 || line >= len(l.lines) {
		return 0, 0
	}
	return l.lines[line].Start, l.lines[line].End
}

// Cells returns the drawn runes of line.
func (l *WrapLayout) Cells(line int) []Cell {
	if line < 0 || line >= len(l.cells) {
		return nil
	}
	return l.cells[line]
}

// Row returns the row of the first line.
func (l *WrapLayout) Row() int {
	return l.row
}
