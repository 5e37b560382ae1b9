package markup

func countRepeat(runes []rune, target rune) int {
	n := 0
	for n < len(runes) && runes[n] == target {
		n++
	}
	return n
}

// firstLineStart returns the first line start at or after from.
func firstLineStart(src []rune, from int) int {
	if from <= 0 {
		return 0
	}
	if from <= len(src) && src[from-1] == '\n' {
		return from
	}
	return nextLineStart(src, from)
}

// nextLineStart returns the start of the line following the one containing p.
func nextLineStart(src []rune, p int) int {
	for p < len(src) && src[p] != '\n' {
		p++
	}
	return p + 1
}

// lineEnd returns the index of the line break ending the line containing p,
// or len(src).
func lineEnd(src []rune, p int) int {
	for p < len(src) && src[p] != '\n' {
		p++
	}
	return p
}
