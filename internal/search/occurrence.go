package search

import "unicode"

// FindAll returns every case-insensitive occurrence of query in haystack,
// sorted by start. Each search resumes one rune after the previous match
// start, so occurrences of queries with repeated runes may overlap: "aa"
// in "aaa" is found at 0 and at 1.
func FindAll(haystack []rune, query string) []Interval {
	if query == "" || len(haystack) == 0 {
		return nil
	}
	needle := foldRunes([]rune(query))
	if len(needle) > len(haystack) {
		return nil
	}

	var found []Interval
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if matchesAtFolded(haystack, i, needle) {
			found = append(found, Interval{Start: i, End: i + len(needle)})
		}
	}
	return found
}

// matchesAtFolded compares rune by rune with unicode.ToLower, which maps a
// rune to exactly one rune so match lengths equal query lengths.
func matchesAtFolded(haystack []rune, start int, needleLower []rune) bool {
	for k, nr := range needleLower {
		if unicode.ToLower(haystack[start+k]) != nr {
			return false
		}
	}
	return true
}

func foldRunes(runes []rune) []rune {
	folded := make([]rune, len(runes))
	for i, r := range runes {
		folded[i] = unicode.ToLower(r)
	}
	return folded
}
