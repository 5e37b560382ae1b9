package search

// Interval is a half-open rune range [Start, End).
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of runes covered by the interval.
func (iv Interval) Len() int {
	if iv.End <= iv.Start {
		return 0
	}
	return iv.End - iv.Start
}

// Empty reports whether the interval covers nothing.
func (iv Interval) Empty() bool {
	return iv.End <= iv.Start
}

// Contains reports whether other lies entirely inside iv.
func (iv Interval) Contains(other Interval) bool {
	return other.Start >= iv.Start && other.End <= iv.End
}

// Shift moves the interval by delta.
func (iv Interval) Shift(delta int) Interval {
	return Interval{Start: iv.Start + delta, End: iv.End + delta}
}

// MergeSpans collapses overlapping or touching spans. Input must be sorted
// by Start, which FindAll and Partition guarantee.
func MergeSpans(spans []Interval) []Interval {
	if len(spans) == 0 {
		return nil
	}
	merged := make([]Interval, 0, len(spans))
	current := spans[0]
	for i := 1; i < len(spans); i++ {
		next := spans[i]
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}
