package search

import (
	"reflect"
	"strings"
	"testing"
)

func TestFindAll(t *testing.T) {
	tests := []struct {
		haystack string
		query    string
		want     []Interval
	}{
		{"the cat sat on the mat", "at", []Interval{{5, 7}, {9, 11}, {20, 22}}},
		{"The Cat", "the", []Interval{{0, 3}}},
		{"ÄBC äbc", "äb", []Interval{{0, 2}, {4, 6}}},
		{"abc", "", nil},
		{"", "a", nil},
		{"ab", "abc", nil},
		{"no match here", "zzz", nil},
	}

	for _, tt := range tests {
		got := findAllString(tt.haystack, tt.query)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("findAllString(%q, %q) = %v, want %v", tt.haystack, tt.query, got, tt.want)
		}
	}
}

// Each search resumes one rune after the previous start, not after its end,
// so repeated-rune queries produce overlapping occurrences.
func TestFindAllOverlapsRepeatedRunes(t *testing.T) {
	got := findAllString("aaa", "aa")
	want := []Interval{{0, 2}, {1, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("findAllString(aaa, aa) = %v, want %v", got, want)
	}
}

func TestFindAllProperties(t *testing.T) {
	haystack := []rune("Go gophers go GOING, gogo go")
	for _, query := range []string{"go", "GO", "o", "gog", "ing", " g"} {
		found := FindAll(haystack, query)
		prev := -1
		for _, iv := range found {
			if iv.Start <= prev {
				t.Fatalf("query %q: start %d not after previous %d", query, iv.Start, prev)
			}
			prev = iv.Start
			if iv.Len() != len([]rune(query)) {
				t.Fatalf("query %q: interval %v has wrong length", query, iv)
			}
			if !strings.EqualFold(string(haystack[iv.Start:iv.End]), query) {
				t.Fatalf("query %q: substring %q does not match", query, string(haystack[iv.Start:iv.End]))
			}
		}
	}
}

func TestMergeSpans(t *testing.T) {
	got := MergeSpans([]Interval{{0, 2}, {1, 3}, {3, 4}, {6, 8}})
	want := []Interval{{0, 4}, {6, 8}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MergeSpans = %v, want %v", got, want)
	}
	if MergeSpans(nil) != nil {
		t.Fatalf("MergeSpans(nil) should be nil")
	}
}

func findAllString(haystack, query string) []Interval {
	return FindAll([]rune(haystack), query)
}
