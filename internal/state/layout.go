package state

import (
	"github.com/kk-code-lab/mdlens/internal/blocks"
	"github.com/kk-code-lab/mdlens/internal/document"
	"github.com/kk-code-lab/mdlens/internal/geometry"
	"github.com/kk-code-lab/mdlens/internal/search"
)

// BlockLayout places one block on the document's row grid. Label rows
// (the image caption line) come first; the wrapped plain text follows on
// Wrap's rows.
type BlockLayout struct {
	Index  int
	Block  blocks.Block
	Text   []rune
	Wrap   *geometry.WrapLayout
	Row    int
	Rows   int
	Labels int
}

// TextRows returns how many wrapped lines of the block are drawn.
func (b *BlockLayout) TextRows() int {
	return b.Rows - b.Labels
}

// DocumentLayout stacks the blocks of a snapshot vertically.
type DocumentLayout struct {
	Width  int
	Blocks []BlockLayout
	Rows   int
}

// BuildLayout wraps every block of snap to width columns.
func BuildLayout(snap *document.Snapshot, width, tabWidth int) *DocumentLayout {
	l := &DocumentLayout{Width: width}
	if snap == nil {
		return l
	}
	row := 0
	for i, b := range snap.Blocks {
		bl := BlockLayout{Index: i, Block: b, Text: []rune(b.PlainText()), Row: row}
		if b.Kind == blocks.KindImage {
			bl.Labels = 1
		}
		bl.Wrap = geometry.NewWrapLayout(bl.Text, width, tabWidth, row+bl.Labels)
		bl.Rows = bl.Labels + drawnLines(b, bl.Text, bl.Wrap, i == len(snap.Blocks)-1)
		row += bl.Rows
		l.Blocks = append(l.Blocks, bl)
	}
	l.Rows = row
	return l
}

// drawnLines drops the empty line after a text block's final line break
// when another block follows, and the empty line of an untitled image.
func drawnLines(b blocks.Block, text []rune, wrap *geometry.WrapLayout, last bool) int {
	n := wrap.LineCount()
	switch {
	case b.Kind == blocks.KindImage && len(text) == 0:
		return 0
	case b.Kind == blocks.KindText && !last && n > 1 && text[len(text)-1] == '\n':
		return n - 1
	}
	return n
}

// Regions returns the highlight regions of a block-local interval in
// document rows.
func (l *DocumentLayout) Regions(block int, iv search.Interval) []geometry.Region {
	if l == nil || block < 0 || block >= len(l.Blocks) {
		return nil
	}
	return geometry.Highlight(iv, l.Blocks[block].Wrap)
}

// RegionsAll returns the regions of every interval of block.
func (l *DocumentLayout) RegionsAll(block int, ivs []search.Interval) []geometry.Region {
	if l == nil || block < 0 || block >= len(l.Blocks) {
		return nil
	}
	return geometry.HighlightAll(ivs, l.Blocks[block].Wrap)
}

// PiecesBounds returns the rectangle enclosing every piece.
func (l *DocumentLayout) PiecesBounds(pieces []document.Piece) (geometry.Rect, bool) {
	var regions []geometry.Region
	for _, p := range pieces {
		regions = append(regions, l.Regions(p.Block, p.Interval)...)
	}
	return geometry.Bounding(regions)
}

// BlockAt returns the block drawn on row.
func (l *DocumentLayout) BlockAt(row int) (*BlockLayout, bool) {
	if l == nil {
		return nil, false
	}
	lo, hi := 0, len(l.Blocks)
	for lo < hi {
		mid := (lo + hi) / 2
		b := &l.Blocks[mid]
		switch {
		case row < b.Row:
			hi = mid
		case row >= b.Row+b.Rows:
			lo = mid + 1
		default:
			return b, true
		}
	}
	return nil, false
}
