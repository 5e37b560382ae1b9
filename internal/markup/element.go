package markup

import "fmt"

// Kind identifies the construct an Element was parsed from.
type Kind int

const (
	KindPlainText Kind = iota
	KindUnorderedListItem
	KindOrderedListItem
	KindHeader
	KindQuote
	KindItalic
	KindBold
	KindStrike
	KindRule
	KindInlineCode
	KindLink
	KindImage
	KindCodeBlock
)

var kindNames = [...]string{
	KindPlainText:         "plain",
	KindUnorderedListItem: "unordered-item",
	KindOrderedListItem:   "ordered-item",
	KindHeader:            "header",
	KindQuote:             "quote",
	KindItalic:            "italic",
	KindBold:              "bold",
	KindStrike:            "strike",
	KindRule:              "rule",
	KindInlineCode:        "inline-code",
	KindLink:              "link",
	KindImage:             "image",
	KindCodeBlock:         "code-block",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Nests reports whether the inner text of a construct is scanned again for
// nested constructs.
func (k Kind) Nests() bool {
	switch k {
	case KindUnorderedListItem, KindOrderedListItem, KindHeader, KindQuote,
		KindItalic, KindBold, KindStrike:
		return true
	default:
		return false
	}
}

// Element is one node of the parsed document tree. Text holds the
// construct's content with its delimiters removed; Children holds the
// constructs found inside Text and is empty for leaves.
//
// Kind-specific payload:
//   - KindHeader: Level (1-6)
//   - KindOrderedListItem: Order, the literal label such as "3."
//   - KindLink: URL; Text is the label
//   - KindImage: URL and Alt; Text is the optional title
type Element struct {
	Kind     Kind
	Text     string
	Children []Element

	Level int
	Order string
	URL   string
	Alt   string
}

// Plain returns a plain text element.
func Plain(text string) Element {
	return Element{Kind: KindPlainText, Text: text}
}

// IsLeaf reports whether the element carries no nested elements.
func (e Element) IsLeaf() bool {
	return len(e.Children) == 0
}
