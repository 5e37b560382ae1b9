package markup

import (
	"reflect"
	"testing"
)

func kindsOf(elements []Element) []Kind {
	kinds := make([]Kind, len(elements))
	for i, el := range elements {
		kinds[i] = el.Kind
	}
	return kinds
}

func TestParseHeaderGapAndEmphasis(t *testing.T) {
	elements := NewParser().Parse("# Title\n\nSome *bold* text")

	want := []Kind{KindHeader, KindPlainText, KindItalic, KindPlainText}
	if got := kindsOf(elements); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	header := elements[0]
	if header.Level != 1 || header.Text != "Title" {
		t.Fatalf("header = level %d text %q, want level 1 text %q", header.Level, header.Text, "Title")
	}
	if len(header.Children) != 1 || header.Children[0].Text != "Title" {
		t.Fatalf("header children = %+v", header.Children)
	}
	if elements[1].Text != "\n\nSome " {
		t.Fatalf("gap = %q", elements[1].Text)
	}
	if elements[2].Text != "bold" {
		t.Fatalf("emphasis text = %q, want %q", elements[2].Text, "bold")
	}
	if elements[3].Text != " text" {
		t.Fatalf("tail = %q", elements[3].Text)
	}
}

func TestParseSingleConstructs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		text  string
		check func(t *testing.T, el Element)
	}{
		{name: "unordered dash", input: "- item", kind: KindUnorderedListItem, text: "item"},
		{name: "unordered plus", input: "+ item", kind: KindUnorderedListItem, text: "item"},
		{name: "unordered star", input: "* item", kind: KindUnorderedListItem, text: "item"},
		{
			name: "ordered item keeps label", input: "12. step", kind: KindOrderedListItem, text: "step",
			check: func(t *testing.T, el Element) {
				if el.Order != "12." {
					t.Fatalf("order = %q, want %q", el.Order, "12.")
				}
			},
		},
		{
			name: "header level six", input: "###### deep", kind: KindHeader, text: "deep",
			check: func(t *testing.T, el Element) {
				if el.Level != 6 {
					t.Fatalf("level = %d, want 6", el.Level)
				}
			},
		},
		{name: "quote", input: "> said", kind: KindQuote, text: "said"},
		{name: "italic underscore", input: "_soft_", kind: KindItalic, text: "soft"},
		{name: "bold stars", input: "**loud**", kind: KindBold, text: "loud"},
		{name: "bold underscores", input: "__loud__", kind: KindBold, text: "loud"},
		{name: "strike", input: "~~gone~~", kind: KindStrike, text: "gone"},
		{name: "rule dashes", input: "---", kind: KindRule, text: ""},
		{name: "rule underscores", input: "___", kind: KindRule, text: ""},
		{name: "rule stars", input: "***", kind: KindRule, text: ""},
		{name: "inline code", input: "`x*y*`", kind: KindInlineCode, text: "x*y*"},
		{
			name: "link", input: "[site](http://a.b)", kind: KindLink, text: "site",
			check: func(t *testing.T, el Element) {
				if el.URL != "http://a.b" {
					t.Fatalf("url = %q", el.URL)
				}
			},
		},
		{
			name: "image without title", input: "![cat](cat.png)", kind: KindImage, text: "",
			check: func(t *testing.T, el Element) {
				if el.URL != "cat.png" || el.Alt != "cat" {
					t.Fatalf("image = url %q alt %q", el.URL, el.Alt)
				}
			},
		},
		{name: "fenced code", input: "```\nfmt.Println()\n```", kind: KindCodeBlock, text: "\nfmt.Println()\n"},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements := p.Parse(tt.input)
			if len(elements) != 1 {
				t.Fatalf("Parse(%q) = %d elements (%v), want 1", tt.input, len(elements), kindsOf(elements))
			}
			el := elements[0]
			if el.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", el.Kind, tt.kind)
			}
			if el.Text != tt.text {
				t.Fatalf("text = %q, want %q", el.Text, tt.text)
			}
			if tt.kind.Nests() && len(el.Children) == 0 {
				t.Fatalf("expected nested constructs to be re-scanned")
			}
			if !tt.kind.Nests() && len(el.Children) != 0 {
				t.Fatalf("leaf construct %v has children %+v", tt.kind, el.Children)
			}
			if tt.check != nil {
				tt.check(t, el)
			}
		})
	}
}

func TestParseImageWithTitle(t *testing.T) {
	elements := NewParser().Parse(`![alt](http://x.png "cap")`)
	if len(elements) != 1 || elements[0].Kind != KindImage {
		t.Fatalf("expected a single image, got %v", kindsOf(elements))
	}
	img := elements[0]
	if img.URL != "http://x.png" || img.Alt != "alt" || img.Text != "cap" {
		t.Fatalf("image = url %q alt %q title %q", img.URL, img.Alt, img.Text)
	}
}

func TestParseBoldIsNotTwoItalics(t *testing.T) {
	elements := NewParser().Parse("a **x** b")
	want := []Kind{KindPlainText, KindBold, KindPlainText}
	if got := kindsOf(elements); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if elements[1].Text != "x" {
		t.Fatalf("bold text = %q", elements[1].Text)
	}
}

func TestParseNestedConstructs(t *testing.T) {
	elements := NewParser().Parse("> quote with **bold _it_**")
	if len(elements) != 1 || elements[0].Kind != KindQuote {
		t.Fatalf("expected quote, got %v", kindsOf(elements))
	}
	quote := elements[0]
	if got := kindsOf(quote.Children); !reflect.DeepEqual(got, []Kind{KindPlainText, KindBold}) {
		t.Fatalf("quote children = %v", got)
	}
	bold := quote.Children[1]
	if got := kindsOf(bold.Children); !reflect.DeepEqual(got, []Kind{KindPlainText, KindItalic}) {
		t.Fatalf("bold children = %v", got)
	}
	if bold.Children[1].Text != "it" {
		t.Fatalf("italic text = %q", bold.Children[1].Text)
	}
	if got := PlainText(quote); got != "quote with bold it" {
		t.Fatalf("PlainText(quote) = %q", got)
	}
}

func TestParseListItemWithInlineConstructs(t *testing.T) {
	elements := NewParser().Parse("- item *a* and `code`\n1. next [link](u)")
	want := []Kind{KindUnorderedListItem, KindPlainText, KindOrderedListItem}
	if got := kindsOf(elements); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	item := elements[0]
	wantChildren := []Kind{KindPlainText, KindItalic, KindPlainText, KindInlineCode}
	if got := kindsOf(item.Children); !reflect.DeepEqual(got, wantChildren) {
		t.Fatalf("item children = %v, want %v", got, wantChildren)
	}
	ordered := elements[2]
	if got := kindsOf(ordered.Children); !reflect.DeepEqual(got, []Kind{KindPlainText, KindLink}) {
		t.Fatalf("ordered children = %v", got)
	}
	if ordered.Children[1].URL != "u" || ordered.Children[1].Text != "link" {
		t.Fatalf("link = %+v", ordered.Children[1])
	}
}

func TestParseRuleBetweenLines(t *testing.T) {
	elements := NewParser().Parse("a\n---\nb")
	want := []Kind{KindPlainText, KindRule, KindPlainText}
	if got := kindsOf(elements); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if got := PlainTextOf(elements); got != "a\n\nb" {
		t.Fatalf("plain = %q", got)
	}
}

func TestParseBlockConstructsNeedLineStart(t *testing.T) {
	tests := []string{
		"text # not a header",
		"text > not a quote",
		"text - not an item",
		"see ![img](a.png) inline",
	}
	p := NewParser()
	for _, input := range tests {
		for _, el := range p.Parse(input) {
			switch el.Kind {
			case KindHeader, KindQuote, KindUnorderedListItem, KindImage:
				t.Fatalf("Parse(%q) produced block construct %v mid-line", input, el.Kind)
			}
		}
	}
}

func TestParseMalformedFallsThroughToPlainText(t *testing.T) {
	tests := []string{
		"**open bold",
		"*open italic",
		"~~open strike",
		"`open code",
		"[label](no-close",
		"![a](x",
		`![a](x "unterminated)`,
		"####### seven",
		"#nospace",
		"```\nno closing fence",
		"-",
	}
	p := NewParser()
	for _, input := range tests {
		elements := p.Parse(input)
		for _, el := range elements {
			if el.Kind == KindImage || el.Kind == KindHeader || el.Kind == KindCodeBlock {
				t.Fatalf("Parse(%q) produced %v", input, el.Kind)
			}
		}
		if got := PlainTextOf(elements); len([]rune(got)) > len([]rune(input)) {
			t.Fatalf("Parse(%q) plain text %q longer than input", input, got)
		}
	}
}

func TestParseMalformedImageFallsBackToLink(t *testing.T) {
	elements := NewParser().Parse("![a](x y)")
	want := []Kind{KindPlainText, KindLink}
	if got := kindsOf(elements); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if elements[0].Text != "!" || elements[1].URL != "x y" {
		t.Fatalf("unexpected elements %+v", elements)
	}
}

func TestParseCodeBlockIsNotRescanned(t *testing.T) {
	elements := NewParser().Parse("intro\n```\n# not header\n**not bold**\n```\noutro")
	want := []Kind{KindPlainText, KindCodeBlock, KindPlainText}
	if got := kindsOf(elements); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	code := elements[1]
	if code.Text != "\n# not header\n**not bold**\n" {
		t.Fatalf("code text = %q", code.Text)
	}
	if len(code.Children) != 0 {
		t.Fatalf("code block should be a leaf")
	}
}

func TestParseEmptyInput(t *testing.T) {
	if got := NewParser().Parse(""); len(got) != 0 {
		t.Fatalf("Parse(\"\") = %v, want empty", got)
	}
}

func TestParseStrippedTextYieldsOnlyPlainText(t *testing.T) {
	p := NewParser()
	documents := []string{
		"# Title\n\nSome *soft* and **loud** text",
		"- first item\n- second item\n\n1. numbered",
		"> a quote with ~~strike~~ and `code`",
		"Read [the docs](http://example.com) today",
	}
	for _, doc := range documents {
		plain := p.Clear(doc)
		for _, el := range p.Parse(plain) {
			if el.Kind != KindPlainText {
				t.Fatalf("Parse(Clear(%q)) = %v, want only plain text", doc, kindsOf(p.Parse(plain)))
			}
		}
	}
}

func TestMatcherPrefersEarliestStart(t *testing.T) {
	m := NewMatcher()
	src := []rune("x `code` then **bold**")
	match, ok := m.Next(src, 0)
	if !ok {
		t.Fatalf("expected a match")
	}
	if match.Kind != KindInlineCode || match.Start != 2 || match.End != 8 {
		t.Fatalf("match = %+v", match)
	}
	match, ok = m.Next(src, match.End)
	if !ok || match.Kind != KindBold {
		t.Fatalf("second match = %+v ok=%v", match, ok)
	}
	if _, ok := m.Next(src, match.End); ok {
		t.Fatalf("expected no match past the last construct")
	}
}

func TestMatcherTieBreaksByPriority(t *testing.T) {
	// "* " opens both an unordered item and (with a closing star) italic text.
	src := []rune("* a *b*")
	match, ok := NewMatcher().Next(src, 0)
	if !ok || match.Kind != KindUnorderedListItem {
		t.Fatalf("match = %+v ok=%v, want unordered item", match, ok)
	}
}
