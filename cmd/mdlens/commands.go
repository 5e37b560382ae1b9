package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/kk-code-lab/mdlens/internal/blocks"
	"github.com/kk-code-lab/mdlens/internal/document"
	"github.com/kk-code-lab/mdlens/internal/fs"
	"github.com/kk-code-lab/mdlens/internal/markup"
	"github.com/kk-code-lab/mdlens/internal/search"
)

func loadSnapshot(path string) (*document.Snapshot, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	text, err := fs.ReadDocument(path, cfg.MaxDocumentBytes)
	if err != nil {
		return nil, err
	}
	return document.Build(markup.NewParser(), text, 1), nil
}

func runPlain(args []string, stdout, stderr io.Writer) error {
	stats := false
	var paths []string
	for _, arg := range args {
		if arg == "--stats" || arg == "-s" {
			stats = true
			continue
		}
		paths = append(paths, arg)
	}
	if len(paths) != 1 {
		return errUsage
	}

	snap, err := loadSnapshot(paths[0])
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, snap.Plain)
	if snap.Plain != "" && !strings.HasSuffix(snap.Plain, "\n") {
		fmt.Fprintln(stdout)
	}
	if stats {
		fmt.Fprintf(stderr, "words: %d  chars: %d  blocks: %d\n", snap.Words(), snap.Chars(), len(snap.Blocks))
	}
	return nil
}

func runBlocks(path string, stdout io.Writer) error {
	snap, err := loadSnapshot(path)
	if err != nil {
		return err
	}
	p := newPrinter(stdout)
	for i, b := range snap.Blocks {
		p.block(i, b, blockPreview(b))
	}
	return nil
}

func runSearch(path, query string, stdout io.Writer) error {
	snap, err := loadSnapshot(path)
	if err != nil {
		return err
	}
	result, err := snap.Search(query)
	if err != nil {
		return fmt.Errorf("search %s: %w", path, err)
	}

	p := newPrinter(stdout)
	p.summary(result.Len(), query)
	plain := snap.PlainRunes()
	for _, occ := range result.Occurrences {
		p.occurrence(occ, plain)
	}
	for _, part := range result.Blocks {
		if len(part.Intervals) == 0 {
			continue
		}
		p.blockIntervals(part, snap.Blocks[part.Block])
	}
	return nil
}

// blockPreview returns the block's text on one line.
func blockPreview(b blocks.Block) string {
	if el, ok := b.Element(); ok && b.Kind == blocks.KindImage {
		preview := el.Alt
		if el.URL != "" {
			preview += " (" + el.URL + ")"
		}
		if title := b.PlainText(); title != "" {
			preview += " " + title
		}
		return oneLine(preview)
	}
	return oneLine(b.PlainText())
}

func oneLine(text string) string {
	return strings.ReplaceAll(strings.TrimSuffix(text, "\n"), "\n", "⏎")
}

// occurrenceContext returns the line holding occ split around the match.
// A match running past the line end is cut there.
func occurrenceContext(plain []rune, occ search.Interval) (before, match, after string) {
	start := occ.Start
	for start > 0 && plain[start-1] != '\n' {
		start--
	}
	matchEnd := occ.Start
	for matchEnd < occ.End && plain[matchEnd] != '\n' {
		matchEnd++
	}
	end := matchEnd
	for end < len(plain) && plain[end] != '\n' {
		end++
	}
	return string(plain[start:occ.Start]), string(plain[occ.Start:matchEnd]), string(plain[matchEnd:end])
}
