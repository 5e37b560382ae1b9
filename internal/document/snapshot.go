package document

import (
	"fmt"

	"github.com/kk-code-lab/mdlens/internal/blocks"
	"github.com/kk-code-lab/mdlens/internal/markup"
	"github.com/kk-code-lab/mdlens/internal/search"
)

// Snapshot is one parsed version of a document. It is never modified after
// Build returns, so it can be searched from any goroutine.
type Snapshot struct {
	Version  uint64
	Source   string
	Elements []markup.Element
	Blocks   []blocks.Block
	Plain    string

	plainRunes []rune
	bounds     []search.Interval
}

// Build parses source and derives blocks and plain text.
func Build(parser *markup.Parser, source string, version uint64) *Snapshot {
	elements := parser.Parse(source)
	linear := blocks.Linearize(elements)
	plain := markup.PlainTextOf(elements)
	return &Snapshot{
		Version:    version,
		Source:     source,
		Elements:   elements,
		Blocks:     linear,
		Plain:      plain,
		plainRunes: []rune(plain),
		bounds:     blocks.Bounds(linear),
	}
}

// PlainRunes returns the plain text as runes. Callers must not modify it.
func (s *Snapshot) PlainRunes() []rune {
	return s.plainRunes
}

// Bounds returns the block bounds. Callers must not modify it.
func (s *Snapshot) Bounds() []search.Interval {
	return s.bounds
}

// Chars returns the plain text length in runes.
func (s *Snapshot) Chars() int {
	return len(s.plainRunes)
}

// Words returns the number of words in the plain text.
func (s *Snapshot) Words() int {
	return markup.CountWords(s.Plain)
}

// Result holds a query's occurrences and their per-block pieces.
type Result struct {
	Query       string
	Version     uint64
	Occurrences []search.Interval
	Blocks      []search.BlockIntervals
}

// Len returns the number of occurrences.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Occurrences)
}

// Search finds query in the plain text and partitions the occurrences over
// the blocks. An error means the snapshot is internally inconsistent.
func (s *Snapshot) Search(query string) (*Result, error) {
	if total := blocks.TotalLength(s.Blocks); total != len(s.plainRunes) {
		return nil, fmt.Errorf("%w: blocks cover %d runes, plain text has %d", search.ErrBoundsMismatch, total, len(s.plainRunes))
	}
	occurrences := search.FindAll(s.plainRunes, query)
	parts, err := search.Partition(occurrences, s.bounds)
	if err != nil {
		return nil, fmt.Errorf("partition %q in version %d: %w", query, s.Version, err)
	}
	return &Result{Query: query, Version: s.Version, Occurrences: occurrences, Blocks: parts}, nil
}

// Piece is the part of one occurrence that falls in one block, in block
// local coordinates.
type Piece struct {
	Block    int
	Interval search.Interval
}

// Pieces splits a single absolute interval over the snapshot's blocks.
func (s *Snapshot) Pieces(iv search.Interval) ([]Piece, error) {
	parts, err := search.Partition([]search.Interval{iv}, s.bounds)
	if err != nil {
		return nil, err
	}
	var pieces []Piece
	for _, part := range parts {
		for _, local := range part.Intervals {
			pieces = append(pieces, Piece{Block: part.Block, Interval: local})
		}
	}
	return pieces, nil
}
