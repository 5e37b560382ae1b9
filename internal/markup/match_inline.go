package markup

import "unicode"

// Inline constructs can start anywhere but never cross a line break.

// matchItalic recognizes *text* and _text_. A delimiter that belongs to a
// longer run of the same rune never opens or closes emphasis, which keeps
// **bold** from being read as two italics.
func matchItalic(src []rune, from int) (Match, bool) {
	for i := from; i+1 < len(src); i++ {
		d := src[i]
		if d != '*' && d != '_' {
			continue
		}
		if i > 0 && src[i-1] == d {
			continue
		}
		if next := src[i+1]; next == d || next == '\n' {
			continue
		}
		closeIdx := findClosingRun(src, i+2, d, 1)
		if closeIdx == -1 {
			continue
		}
		return Match{Kind: KindItalic, Start: i, End: closeIdx + 1, TextStart: i + 1, TextEnd: closeIdx}, true
	}
	return Match{}, false
}

func matchBold(src []rune, from int) (Match, bool) {
	return matchDoubleDelimited(src, from, KindBold, '*', '_')
}

func matchStrike(src []rune, from int) (Match, bool) {
	return matchDoubleDelimited(src, from, KindStrike, '~')
}

func matchDoubleDelimited(src []rune, from int, kind Kind, delims ...rune) (Match, bool) {
	for i := from; i+2 < len(src); i++ {
		d := src[i]
		if !containsRune(delims, d) || src[i+1] != d {
			continue
		}
		if i > 0 && src[i-1] == d {
			continue
		}
		if next := src[i+2]; next == d || next == '\n' {
			continue
		}
		closeIdx := findClosingRun(src, i+3, d, 2)
		if closeIdx == -1 {
			continue
		}
		return Match{Kind: kind, Start: i, End: closeIdx + 2, TextStart: i + 2, TextEnd: closeIdx}, true
	}
	return Match{}, false
}

// findClosingRun returns the index of the first run of exactly count
// delimiters at or after start on the current line, or -1.
func findClosingRun(src []rune, start int, delim rune, count int) int {
	for j := start; j < len(src) && src[j] != '\n'; j++ {
		if src[j] != delim || src[j-1] == delim {
			continue
		}
		if countRepeat(src[j:], delim) == count {
			return j
		}
	}
	return -1
}

func matchInlineCode(src []rune, from int) (Match, bool) {
	for i := from; i+1 < len(src); i++ {
		if src[i] != '`' || (i > 0 && src[i-1] == '`') {
			continue
		}
		if first := src[i+1]; first == '`' || unicode.IsSpace(first) {
			continue
		}
		j := i + 2
		for j < len(src) && src[j] != '`' && src[j] != '\n' {
			j++
		}
		if j >= len(src) || src[j] != '`' {
			continue
		}
		if j+1 < len(src) && src[j+1] == '`' {
			continue
		}
		return Match{Kind: KindInlineCode, Start: i, End: j + 1, TextStart: i + 1, TextEnd: j}, true
	}
	return Match{}, false
}

// matchLink recognizes [label](url). The label is the shortest run followed
// by "](", the url the shortest run closed by ")".
func matchLink(src []rune, from int) (Match, bool) {
	for i := from; i < len(src); i++ {
		if src[i] != '[' || i+1 >= len(src) || src[i+1] == '\n' {
			continue
		}
		labelEnd := -1
		for k := i + 2; k+1 < len(src) && src[k] != '\n'; k++ {
			if src[k] == ']' && src[k+1] == '(' {
				labelEnd = k
				break
			}
		}
		if labelEnd == -1 || labelEnd+2 >= len(src) || src[labelEnd+2] == '\n' {
			continue
		}
		urlEnd := -1
		for m := labelEnd + 3; m < len(src) && src[m] != '\n'; m++ {
			if src[m] == ')' {
				urlEnd = m
				break
			}
		}
		if urlEnd == -1 {
			continue
		}
		return Match{
			Kind:      KindLink,
			Start:     i,
			End:       urlEnd + 1,
			TextStart: i + 1,
			TextEnd:   labelEnd,
			URL:       string(src[labelEnd+2 : urlEnd]),
		}, true
	}
	return Match{}, false
}

func containsRune(set []rune, r rune) bool {
	for _, candidate := range set {
		if candidate == r {
			return true
		}
	}
	return false
}
