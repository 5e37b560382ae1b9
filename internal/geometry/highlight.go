package geometry

import "github.com/kk-code-lab/mdlens/internal/search"

// Layout maps block-local rune offsets onto drawn lines. Coordinates are in
// whatever unit the renderer draws in; the terminal viewer uses cells.
type Layout interface {
	// Position returns the line holding offset and the x coordinate of the
	// offset's left edge. offset may equal the text length.
	Position(offset int) (line, x int)
	// LineExtent returns the vertical extent [top, bottom) of a line.
	LineExtent(line int) (top, bottom int)
	// LineEdges returns the horizontal extent of the text on a line.
	LineEdges(line int) (left, right int)
}

// Rect is a half-open rectangle.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns Right-Left, or 0 for inverted rectangles.
func (r Rect) Width() int {
	return max(0, r.Right-r.Left)
}

// Height returns Bottom-Top, or 0 for inverted rectangles.
func (r Rect) Height() int {
	return max(0, r.Bottom-r.Top)
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Part tells a painter which piece of a highlight a region is, so it can
// round only the outer corners of a multi-line highlight.
type Part int

const (
	PartSingle Part = iota
	PartStart
	PartMiddle
	PartEnd
)

func (p Part) String() string {
	switch p {
	case PartSingle:
		return "single"
	case PartStart:
		return "start"
	case PartMiddle:
		return "middle"
	case PartEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Region is one rectangle of a highlight.
type Region struct {
	Rect
	Part Part
}

// Highlight returns the rectangles covering iv on layout: one region when
// the interval stays on one line, otherwise a start region running to the
// right edge, a full-width region per line in between and an end region
// from the left edge.
func Highlight(iv search.Interval, layout Layout) []Region {
	if iv.Empty() || layout == nil {
		return nil
	}

	startLine, startX := layout.Position(iv.Start)
	endLine, endX := layout.Position(iv.End)
	if endLine > startLine {
		// An end sitting at the very start of a later line belongs to the
		// line of the last covered rune.
		lastLine, _ := layout.Position(iv.End - 1)
		if lastLine < endLine {
			endLine = lastLine
			_, endX = layout.LineEdges(lastLine)
		}
	}

	if startLine == endLine {
		top, bottom := layout.LineExtent(startLine)
		return []Region{{Rect: Rect{Left: startX, Top: top, Right: endX, Bottom: bottom}, Part: PartSingle}}
	}

	regions := make([]Region, 0, endLine-startLine+1)
	top, bottom := layout.LineExtent(startLine)
	_, right := layout.LineEdges(startLine)
	regions = append(regions, Region{Rect: Rect{Left: startX, Top: top, Right: right, Bottom: bottom}, Part: PartStart})

	for line := startLine + 1; line < endLine; line++ {
		top, bottom := layout.LineExtent(line)
		left, right := layout.LineEdges(line)
		regions = append(regions, Region{Rect: Rect{Left: left, Top: top, Right: right, Bottom: bottom}, Part: PartMiddle})
	}

	top, bottom = layout.LineExtent(endLine)
	left, _ := layout.LineEdges(endLine)
	regions = append(regions, Region{Rect: Rect{Left: left, Top: top, Right: endX, Bottom: bottom}, Part: PartEnd})
	return regions
}

// HighlightAll returns the regions of every interval, in order.
func HighlightAll(intervals []search.Interval, layout Layout) []Region {
	var regions []Region
	for _, iv := range intervals {
		regions = append(regions, Highlight(iv, layout)...)
	}
	return regions
}

// Bounding returns the smallest rectangle containing every region.
func Bounding(regions []Region) (Rect, bool) {
	if len(regions) == 0 {
		return Rect{}, false
	}
	box := regions[0].Rect
	for _, r := range regions[1:] {
		box.Left = min(box.Left, r.Left)
		box.Top = min(box.Top, r.Top)
		box.Right = max(box.Right, r.Right)
		box.Bottom = max(box.Bottom, r.Bottom)
	}
	return box, true
}
