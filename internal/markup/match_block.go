package markup

import "unicode"

// Block-level constructs only start at the beginning of the span or right
// after a line break and run to the end of their line.

func matchUnorderedItem(src []rune, from int) (Match, bool) {
	for p := firstLineStart(src, from); p < len(src); p = nextLineStart(src, p) {
		if !isBullet(src[p]) || p+1 >= len(src) || src[p+1] != ' ' {
			continue
		}
		end := lineEnd(src, p)
		if end <= p+2 {
			continue
		}
		return Match{Kind: KindUnorderedListItem, Start: p, End: end, TextStart: p + 2, TextEnd: end}, true
	}
	return Match{}, false
}

func matchHeader(src []rune, from int) (Match, bool) {
	for p := firstLineStart(src, from); p < len(src); p = nextLineStart(src, p) {
		level := countRepeat(src[p:], '#')
		if level == 0 || level > 6 || p+level >= len(src) || src[p+level] != ' ' {
			continue
		}
		end := lineEnd(src, p)
		if end <= p+level+1 {
			continue
		}
		return Match{Kind: KindHeader, Start: p, End: end, TextStart: p + level + 1, TextEnd: end, Level: level}, true
	}
	return Match{}, false
}

func matchQuote(src []rune, from int) (Match, bool) {
	for p := firstLineStart(src, from); p < len(src); p = nextLineStart(src, p) {
		if src[p] != '>' || p+1 >= len(src) || src[p+1] != ' ' {
			continue
		}
		end := lineEnd(src, p)
		if end <= p+2 {
			continue
		}
		return Match{Kind: KindQuote, Start: p, End: end, TextStart: p + 2, TextEnd: end}, true
	}
	return Match{}, false
}

func matchRule(src []rune, from int) (Match, bool) {
	for p := firstLineStart(src, from); p < len(src); p = nextLineStart(src, p) {
		ch := src[p]
		if ch != '-' && ch != '_' && ch != '*' {
			continue
		}
		if countRepeat(src[p:], ch) != 3 || lineEnd(src, p) != p+3 {
			continue
		}
		return Match{Kind: KindRule, Start: p, End: p + 3, TextStart: p + 3, TextEnd: p + 3}, true
	}
	return Match{}, false
}

func matchOrderedItem(src []rune, from int) (Match, bool) {
	for p := firstLineStart(src, from); p < len(src); p = nextLineStart(src, p) {
		digits := 0
		for p+digits < len(src) && isASCIIDigit(src[p+digits]) {
			digits++
		}
		if digits == 0 || p+digits+1 >= len(src) || src[p+digits] != '.' || src[p+digits+1] != ' ' {
			continue
		}
		end := lineEnd(src, p)
		textStart := p + digits + 2
		if end <= textStart {
			continue
		}
		return Match{
			Kind:      KindOrderedListItem,
			Start:     p,
			End:       end,
			TextStart: textStart,
			TextEnd:   end,
			Order:     string(src[p : p+digits+1]),
		}, true
	}
	return Match{}, false
}

func matchFencedCode(src []rune, from int) (Match, bool) {
	for p := firstLineStart(src, from); p < len(src); p = nextLineStart(src, p) {
		if !hasFence(src, p) {
			continue
		}
		fence := p + 3
		for fence < len(src) && src[fence] != '`' {
			fence++
		}
		if !hasFence(src, fence) {
			continue
		}
		end := fence + 3
		if end < len(src) && src[end] != '\n' {
			continue
		}
		return Match{Kind: KindCodeBlock, Start: p, End: end, TextStart: p + 3, TextEnd: fence}, true
	}
	return Match{}, false
}

// matchImage recognizes ![alt](url) and ![alt](url "title") occupying a
// whole line.
func matchImage(src []rune, from int) (Match, bool) {
	for p := firstLineStart(src, from); p < len(src); p = nextLineStart(src, p) {
		if m, ok := imageAt(src, p); ok {
			return m, true
		}
	}
	return Match{}, false
}

func imageAt(src []rune, p int) (Match, bool) {
	n := len(src)
	if p+1 >= n || src[p] != '!' || src[p+1] != '[' {
		return Match{}, false
	}

	altEnd := p + 2
	for altEnd < n && src[altEnd] != '[' && src[altEnd] != ']' && src[altEnd] != '\n' {
		altEnd++
	}
	if altEnd+1 >= n || src[altEnd] != ']' || src[altEnd+1] != '(' {
		return Match{}, false
	}

	urlStart := altEnd + 2
	urlEnd := urlStart
	for urlEnd < n && isImageURLRune(src[urlEnd]) {
		urlEnd++
	}
	if urlEnd == urlStart || urlEnd >= n {
		return Match{}, false
	}

	i := urlEnd
	titleStart, titleEnd := -1, -1
	if src[i] == ' ' {
		for i < n && src[i] == ' ' {
			i++
		}
		if i >= n || src[i] != '"' {
			return Match{}, false
		}
		titleStart = i + 1
		i = titleStart
		for i < n && src[i] != '"' && src[i] != '\n' {
			i++
		}
		if i >= n || src[i] != '"' {
			return Match{}, false
		}
		titleEnd = i
		i++
	}
	if i >= n || src[i] != ')' {
		return Match{}, false
	}
	end := i + 1
	if end < n && src[end] != '\n' {
		return Match{}, false
	}

	m := Match{
		Kind:  KindImage,
		Start: p,
		End:   end,
		URL:   string(src[urlStart:urlEnd]),
		Alt:   string(src[p+2 : altEnd]),
	}
	if titleStart >= 0 {
		m.TextStart, m.TextEnd = titleStart, titleEnd
		m.Title = string(src[titleStart:titleEnd])
	} else {
		m.TextStart, m.TextEnd = end, end
	}
	return m, true
}

func isImageURLRune(r rune) bool {
	switch r {
	case '"', '(', ')':
		return false
	}
	return !unicode.IsSpace(r)
}

func hasFence(src []rune, p int) bool {
	return p+2 < len(src) && src[p] == '`' && src[p+1] == '`' && src[p+2] == '`'
}

func isBullet(r rune) bool {
	return r == '-' || r == '+' || r == '*'
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
