package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawTextLine draws text from startX, stopping before maxWidth columns, and
// returns the column after the last drawn rune. Zero-width runes are
// attached to the preceding cell.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		w := max(runewidth.RuneWidth(mainc), 1)
		if x-startX+w > maxWidth {
			break
		}
		i++

		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

func (r *Renderer) fillRow(startX, endX, y int, ch rune, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}
