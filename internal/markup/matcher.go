package markup

// Match describes one recognized construct inside a scanned span. Offsets
// are rune indexes into the span. [TextStart, TextEnd) is the construct's
// content with delimiters removed.
type Match struct {
	Kind      Kind
	Start     int
	End       int
	TextStart int
	TextEnd   int

	Level int
	Order string
	URL   string
	Alt   string
	Title string
}

// constructMatcher returns the leftmost match of one construct starting at
// or after from.
type constructMatcher func(src []rune, from int) (Match, bool)

// Matcher resolves the next construct in a span. It holds no per-span state
// and can be shared between goroutines.
type Matcher struct {
	matchers []constructMatcher
}

// NewMatcher builds the matcher with the construct priority order used to
// break ties between matches starting at the same position.
func NewMatcher() *Matcher {
	return &Matcher{
		matchers: []constructMatcher{
			matchUnorderedItem,
			matchHeader,
			matchQuote,
			matchItalic,
			matchBold,
			matchStrike,
			matchRule,
			matchInlineCode,
			matchLink,
			matchOrderedItem,
			matchFencedCode,
			matchImage,
		},
	}
}

// Next returns the earliest construct starting at or after from. Matches
// starting at the same position are resolved by matcher priority.
func (m *Matcher) Next(src []rune, from int) (Match, bool) {
	return m.scan(src).next(from)
}

// scan returns a cursor that remembers each construct's last result so a
// left-to-right walk over a span does not rescan it once per match.
func (m *Matcher) scan(src []rune) *spanScan {
	return &spanScan{
		src:      src,
		matchers: m.matchers,
		cached:   make([]Match, len(m.matchers)),
		state:    make([]scanState, len(m.matchers)),
	}
}

type scanState uint8

const (
	scanUnknown scanState = iota
	scanFound
	scanExhausted
)

type spanScan struct {
	src      []rune
	matchers []constructMatcher
	cached   []Match
	state    []scanState
}

func (s *spanScan) next(from int) (Match, bool) {
	best := -1
	for i, match := range s.matchers {
		switch s.state[i] {
		case scanExhausted:
			continue
		case scanFound:
			if s.cached[i].Start < from {
				s.state[i] = scanUnknown
			}
		}
		if s.state[i] == scanUnknown {
			found, ok := match(s.src, from)
			if !ok {
				// A construct absent after from stays absent after any later cursor.
				s.state[i] = scanExhausted
				continue
			}
			s.cached[i] = found
			s.state[i] = scanFound
		}
		if best == -1 || s.cached[i].Start < s.cached[best].Start {
			best = i
		}
	}
	if best == -1 {
		return Match{}, false
	}
	return s.cached[best], true
}
