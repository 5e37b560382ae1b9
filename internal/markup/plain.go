package markup

import (
	"strings"
	"unicode/utf8"
)

// PlainText returns the searchable text of an element: its own text for
// leaves, otherwise the concatenated plain text of its children.
func PlainText(el Element) string {
	if el.IsLeaf() {
		return el.Text
	}
	var b strings.Builder
	writePlain(&b, el)
	return b.String()
}

// PlainTextOf concatenates the plain text of a sequence of elements.
func PlainTextOf(elements []Element) string {
	var b strings.Builder
	for _, el := range elements {
		writePlain(&b, el)
	}
	return b.String()
}

func writePlain(b *strings.Builder, el Element) {
	if el.IsLeaf() {
		b.WriteString(el.Text)
		return
	}
	for _, child := range el.Children {
		writePlain(b, child)
	}
}

// PlainLength returns the rune length of PlainText(el) without building it.
func PlainLength(el Element) int {
	if el.IsLeaf() {
		return utf8.RuneCountInString(el.Text)
	}
	return PlainLengthOf(el.Children)
}

// PlainLengthOf sums PlainLength over elements.
func PlainLengthOf(elements []Element) int {
	total := 0
	for _, el := range elements {
		total += PlainLength(el)
	}
	return total
}

// Clear strips all markup from text.
func (p *Parser) Clear(text string) string {
	return PlainTextOf(p.Parse(text))
}

// CountWords counts whitespace separated words in plain text.
func CountWords(plain string) int {
	return len(strings.Fields(plain))
}
