package markup

// Parser turns markup text into an element tree. A Parser is immutable and
// safe for concurrent use; build one at startup and share it.
type Parser struct {
	matcher *Matcher
}

// NewParser returns a parser using the default construct set.
func NewParser() *Parser {
	return &Parser{matcher: NewMatcher()}
}

// Parse returns the top-level elements of text. Unrecognized runs become
// PlainText elements, so the result always covers the whole input.
func (p *Parser) Parse(text string) []Element {
	if text == "" {
		return nil
	}
	return p.ParseRunes([]rune(text))
}

// ParseRunes parses an already decoded span.
func (p *Parser) ParseRunes(src []rune) []Element {
	if len(src) == 0 {
		return nil
	}

	var elements []Element
	scan := p.matcher.scan(src)
	last := 0
	for last < len(src) {
		m, ok := scan.next(last)
		if !ok {
			break
		}
		if last < m.Start {
			elements = append(elements, Plain(string(src[last:m.Start])))
		}
		elements = append(elements, p.element(src, m))
		last = m.End
	}
	if last < len(src) {
		elements = append(elements, Plain(string(src[last:])))
	}
	return elements
}

func (p *Parser) element(src []rune, m Match) Element {
	inner := src[m.TextStart:m.TextEnd]
	el := Element{Kind: m.Kind, Text: string(inner)}

	switch m.Kind {
	case KindHeader:
		el.Level = m.Level
	case KindOrderedListItem:
		el.Order = m.Order
	case KindLink:
		el.URL = m.URL
	case KindImage:
		el.URL = m.URL
		el.Alt = m.Alt
	case KindRule:
		el.Text = ""
	}

	if m.Kind.Nests() {
		el.Children = p.ParseRunes(inner)
	}
	return el
}
