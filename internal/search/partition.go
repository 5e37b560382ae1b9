package search

import (
	"errors"
	"fmt"
)

// ErrBoundsMismatch reports occurrences that do not fit the block bounds
// they are partitioned over. It means the block offsets and the plain text
// the occurrences were found in disagree.
var ErrBoundsMismatch = errors.New("occurrence outside block bounds")

// BlockIntervals holds the block-local intervals assigned to one block.
type BlockIntervals struct {
	Block     int        `json:"block"`
	Intervals []Interval `json:"intervals"`
}

// Partition distributes absolute occurrences over consecutive block bounds
// and re-expresses them in block-local coordinates. The result has one
// entry per block, in block order, including blocks without intervals.
// An occurrence crossing a block end is split at the boundary; one ending
// exactly at a block end stays in that block.
//
// occurrences must be sorted by Start and bounds must be contiguous, as
// produced by FindAll and blocks.Bounds.
func Partition(occurrences []Interval, bounds []Interval) ([]BlockIntervals, error) {
	result := make([]BlockIntervals, len(bounds))
	for i := range result {
		result[i] = BlockIntervals{Block: i, Intervals: []Interval{}}
	}

	cursor := 0
	prevStart := 0
	for n, occ := range occurrences {
		if occ.Empty() {
			continue
		}
		if n > 0 && occ.Start < prevStart {
			return nil, fmt.Errorf("%w: occurrence [%d,%d) is out of order", ErrBoundsMismatch, occ.Start, occ.End)
		}
		prevStart = occ.Start

		for cursor < len(bounds) && occ.Start >= bounds[cursor].End {
			cursor++
		}
		if cursor == len(bounds) {
			return nil, fmt.Errorf("%w: occurrence [%d,%d) starts past the last block", ErrBoundsMismatch, occ.Start, occ.End)
		}
		if err := place(result, bounds, cursor, occ); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// place records occ starting at block b, splitting it across as many
// following blocks as it spans. The shared cursor is not advanced here
// because a later, overlapping occurrence may still start in block b.
func place(result []BlockIntervals, bounds []Interval, b int, occ Interval) error {
	remaining := occ
	for ; b < len(bounds); b++ {
		blk := bounds[b]
		if remaining.Start < blk.Start {
			return fmt.Errorf("%w: occurrence [%d,%d) falls before block %d at %d", ErrBoundsMismatch, occ.Start, occ.End, b, blk.Start)
		}
		if remaining.End <= blk.End {
			result[b].Intervals = append(result[b].Intervals, remaining.Shift(-blk.Start))
			return nil
		}
		if piece := (Interval{Start: remaining.Start, End: blk.End}); !piece.Empty() {
			result[b].Intervals = append(result[b].Intervals, piece.Shift(-blk.Start))
		}
		remaining.Start = blk.End
	}
	return fmt.Errorf("%w: occurrence [%d,%d) extends past the last block", ErrBoundsMismatch, occ.Start, occ.End)
}
