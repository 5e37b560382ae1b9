package render

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdlens/internal/blocks"
	"github.com/kk-code-lab/mdlens/internal/markup"
)

// blockStyle is the per-rune styling of one block's plain text plus the
// offsets where rules sit.
type blockStyle struct {
	runes []tcell.Style
	rules map[int]bool
}

func (r *Renderer) styleBlock(b blocks.Block) blockStyle {
	bs := blockStyle{runes: make([]tcell.Style, b.Length), rules: map[int]bool{}}
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	switch b.Kind {
	case blocks.KindCode:
		base = base.Background(r.theme.CodeBlockBg).Foreground(r.theme.CodeBlockFg)
	case blocks.KindImage:
		base = base.Foreground(r.theme.ImageFg).Italic(true)
	}
	r.styleElements(b.Elements, base, &bs, 0)
	return bs
}

func (r *Renderer) styleElements(elements []markup.Element, base tcell.Style, bs *blockStyle, offset int) int {
	for _, el := range elements {
		style := r.elementStyle(el, base)
		if el.Kind == markup.KindRule {
			bs.rules[offset] = true
		}
		if !el.IsLeaf() {
			offset = r.styleElements(el.Children, style, bs, offset)
			continue
		}
		n := utf8.RuneCountInString(el.Text)
		for i := offset; i < offset+n && i < len(bs.runes); i++ {
			bs.runes[i] = style
		}
		offset += n
	}
	return offset
}

func (r *Renderer) elementStyle(el markup.Element, base tcell.Style) tcell.Style {
	switch el.Kind {
	case markup.KindHeader:
		style := base.Foreground(r.theme.HeadingFg).Bold(true)
		if el.Level == 1 {
			style = style.Underline(true)
		}
		return style
	case markup.KindQuote:
		return base.Foreground(r.theme.QuoteFg)
	case markup.KindItalic:
		return base.Italic(true)
	case markup.KindBold:
		return base.Bold(true)
	case markup.KindStrike:
		return base.StrikeThrough(true)
	case markup.KindInlineCode:
		return base.Foreground(r.theme.CodeFg)
	case markup.KindLink:
		return base.Foreground(r.theme.LinkFg).Underline(true)
	}
	return base
}

func (bs blockStyle) at(offset int) tcell.Style {
	if offset < 0 || offset >= len(bs.runes) {
		return tcell.StyleDefault
	}
	return bs.runes[offset]
}
