package blocks

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kk-code-lab/mdlens/internal/markup"
	"github.com/kk-code-lab/mdlens/internal/search"
)

func TestLinearizeHeaderAndEmphasisShareTextBlock(t *testing.T) {
	elements := markup.NewParser().Parse("# Title\n\nSome *bold* text")
	blocks := Linearize(elements)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Kind != KindText || b.Offset != 0 {
		t.Fatalf("block = %v at %d", b.Kind, b.Offset)
	}
	if len(b.Elements) != 4 {
		t.Fatalf("block has %d elements, want 4", len(b.Elements))
	}
	if got := b.PlainText(); got != "Title\n\nSome bold text" {
		t.Fatalf("PlainText = %q", got)
	}
	if b.Length != utf8.RuneCountInString(b.PlainText()) {
		t.Fatalf("Length = %d, plain text has %d runes", b.Length, utf8.RuneCountInString(b.PlainText()))
	}
}

func TestLinearizeImageBlock(t *testing.T) {
	blocks := Linearize(markup.NewParser().Parse(`![alt](http://x.png "cap")`))
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Kind != KindImage || b.Offset != 0 {
		t.Fatalf("block = %v at %d, want image at 0", b.Kind, b.Offset)
	}
	img, ok := b.Element()
	if !ok {
		t.Fatalf("image block has no element")
	}
	if img.URL != "http://x.png" || img.Alt != "alt" {
		t.Fatalf("image = url %q alt %q", img.URL, img.Alt)
	}
	if b.Length != 3 {
		t.Fatalf("image length = %d, want length of title", b.Length)
	}
}

func TestLinearizeSplitsAroundImagesAndCode(t *testing.T) {
	doc := "intro *x*\n![a](a.png)\nmiddle\n```\ncode\n```\nouter ![b](b.png)"
	blocks := Linearize(markup.NewParser().Parse(doc))

	wantKinds := []Kind{KindText, KindImage, KindText, KindCode, KindText}
	if len(blocks) != len(wantKinds) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(wantKinds))
	}
	for i, k := range wantKinds {
		if blocks[i].Kind != k {
			t.Fatalf("block %d kind = %v, want %v", i, blocks[i].Kind, k)
		}
	}
	code, _ := blocks[3].Element()
	if code.Text != "\ncode\n" {
		t.Fatalf("code text = %q", code.Text)
	}
}

func TestLinearizeOffsetsMatchPlainText(t *testing.T) {
	p := markup.NewParser()
	documents := []string{
		"",
		"plain only",
		"# Título\n\n- élément *gras*\n> citation **forte**",
		"a\n![i](u \"title\")\nb\n```\nx\ny\n```\n---\n1. end",
		"![first](f.png)\n![second](s.png)",
		"```\n```\nafter empty code",
		"日本語 `コード` [リンク](http://example.jp)",
	}

	for _, doc := range documents {
		elements := p.Parse(doc)
		blocks := Linearize(elements)
		plain := markup.PlainTextOf(elements)

		if got, want := TotalLength(blocks), utf8.RuneCountInString(plain); got != want {
			t.Fatalf("doc %q: blocks cover %d runes, plain text has %d", doc, got, want)
		}

		var joined strings.Builder
		offset := 0
		for i, b := range blocks {
			if b.Offset != offset {
				t.Fatalf("doc %q: block %d offset %d, want %d", doc, i, b.Offset, offset)
			}
			text := b.PlainText()
			if utf8.RuneCountInString(text) != b.Length {
				t.Fatalf("doc %q: block %d length %d, text %q", doc, i, b.Length, text)
			}
			joined.WriteString(text)
			offset += b.Length
		}
		if joined.String() != plain {
			t.Fatalf("doc %q: joined blocks %q != plain %q", doc, joined.String(), plain)
		}
	}
}

func TestBoundsFeedPartition(t *testing.T) {
	elements := markup.NewParser().Parse("find me\n![me](x.png \"me\")\nme too")
	blocks := Linearize(elements)
	plain := []rune(markup.PlainTextOf(elements))

	parts, err := search.Partition(search.FindAll(plain, "me"), Bounds(blocks))
	if err != nil {
		t.Fatalf("Partition error: %v", err)
	}
	if len(parts) != len(blocks) {
		t.Fatalf("got %d partitions for %d blocks", len(parts), len(blocks))
	}
	for i, part := range parts {
		text := []rune(blocks[i].PlainText())
		for _, iv := range part.Intervals {
			if got := string(text[iv.Start:iv.End]); got != "me" {
				t.Fatalf("block %d interval %v covers %q", i, iv, got)
			}
		}
	}
}

func TestLinearizeEmpty(t *testing.T) {
	if got := Linearize(nil); len(got) != 0 {
		t.Fatalf("Linearize(nil) = %v", got)
	}
	if TotalLength(nil) != 0 {
		t.Fatalf("TotalLength(nil) should be 0")
	}
}
