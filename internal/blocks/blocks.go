package blocks

import (
	"github.com/kk-code-lab/mdlens/internal/markup"
	"github.com/kk-code-lab/mdlens/internal/search"
)

// Kind identifies how a block is rendered.
type Kind int

const (
	KindText Kind = iota
	KindImage
	KindCode
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindCode:
		return "code"
	default:
		return "unknown"
	}
}

// Block is a renderable unit of a parsed document. Text blocks group
// consecutive top-level elements; image and code blocks hold exactly one
// element. Offset and Length are rune counts in the document's plain text.
type Block struct {
	Kind     Kind
	Elements []markup.Element
	Offset   int
	Length   int
}

// Bounds returns the half-open plain-text range owned by the block.
func (b Block) Bounds() search.Interval {
	return search.Interval{Start: b.Offset, End: b.Offset + b.Length}
}

// PlainText returns the block's share of the document plain text.
func (b Block) PlainText() string {
	return markup.PlainTextOf(b.Elements)
}

// Element returns the single element of an image or code block.
func (b Block) Element() (markup.Element, bool) {
	if b.Kind == KindText || len(b.Elements) != 1 {
		return markup.Element{}, false
	}
	return b.Elements[0], true
}

// Linearize groups top-level elements into blocks in document order. Images
// and fenced code get a block of their own; everything else joins the open
// text block. The element slices reference elements without copying text.
func Linearize(elements []markup.Element) []Block {
	var out []Block
	offset := 0
	open, openStart := -1, 0
	for i := range elements {
		el := elements[i]
		length := markup.PlainLength(el)

		switch el.Kind {
		case markup.KindImage, markup.KindCodeBlock:
			kind := KindImage
			if el.Kind == markup.KindCodeBlock {
				kind = KindCode
			}
			out = append(out, Block{Kind: kind, Elements: elements[i : i+1 : i+1], Offset: offset, Length: length})
			open = -1
		default:
			if open == -1 {
				out = append(out, Block{Kind: KindText, Offset: offset})
				open, openStart = len(out)-1, i
			}
			blk := &out[open]
			blk.Elements = elements[openStart : i+1 : i+1]
			blk.Length += length
		}
		offset += length
	}
	return out
}

// Bounds returns the bounds of every block, in order.
func Bounds(blocks []Block) []search.Interval {
	bounds := make([]search.Interval, len(blocks))
	for i, b := range blocks {
		bounds[i] = b.Bounds()
	}
	return bounds
}

// TotalLength returns the plain-text length covered by blocks.
func TotalLength(blocks []Block) int {
	if len(blocks) == 0 {
		return 0
	}
	last := blocks[len(blocks)-1]
	return last.Offset + last.Length
}
