package textutil

import "testing"

func TestDisplayWidthGraphemeClusters(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"ascii", "abc", 3},
		{"wide cjk", "日本", 4},
		{"thumbs up with skin tone", "\U0001F44D\U0001F3FB", 2},
		{"family zwj", "\U0001F468\u200d\U0001F469\u200d\U0001F467", 2},
		{"flag regional indicators", "\U0001F1F5\U0001F1F1", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayWidth(tt.text); got != tt.want {
				t.Fatalf("DisplayWidth(%q)=%d want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated text", 6, "trunc…"},
		{"日本語テキスト", 5, "日本…"},
		{"\U0001F468\u200d\U0001F469\u200d\U0001F467 family", 4, "\U0001F468\u200d\U0001F469\u200d\U0001F467 …"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.text, tt.width); got != tt.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"a\tb", "a   b"},
		{"\tx", "    x"},
		{"ab\n\tc", "ab\n    c"},
		{"no tabs", "no tabs"},
	}
	for _, tt := range tests {
		if got := ExpandTabs(tt.text, 4); got != tt.want {
			t.Fatalf("ExpandTabs(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
	if RuneCells('\u200b') != 1 || RuneCells('日') != 2 {
		t.Fatalf("RuneCells widths unexpected")
	}
}
