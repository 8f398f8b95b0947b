package ascii

import (
	"strings"
	"testing"
)

func TestBoxAlignment(t *testing.T) {
	out := Box([]string{"short", "a longer line"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	// Every line of the box must render at the same display width.
	want := len([]rune(lines[0]))
	for i, line := range lines {
		if got := len([]rune(line)); got != want {
			t.Errorf("line %d width = %d, expected %d: %q", i, got, want, line)
		}
	}
}

func TestBoxEmpty(t *testing.T) {
	if out := Box(nil); out != "" {
		t.Errorf("Box(nil) = %q, expected empty", out)
	}
}

func TestTableAlignment(t *testing.T) {
	rows := [][]string{
		{"size", "path"},
		{"1.00 KB", "/data/a.tif"},
		{"998 B", "/data/b.tif"},
	}
	out := Table(rows, []Align{AlignRight, AlignLeft})
	if len(out) != 4 {
		t.Fatalf("expected header + rule + 2 rows, got %d lines", len(out))
	}
	if !strings.HasPrefix(out[2], "1.00 KB") {
		t.Errorf("right-aligned widest cell should have no leading pad: %q", out[2])
	}
	if !strings.HasPrefix(out[3], "  998 B") {
		t.Errorf("narrow cell should be right-aligned: %q", out[3])
	}
	if !strings.Contains(out[1], "----") {
		t.Errorf("expected header rule, got %q", out[1])
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a very long path that will not fit", 10, "a very ..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.expected {
			t.Errorf("Truncate(%q, %d) = %q, expected %q", tt.in, tt.width, got, tt.expected)
		}
	}
}
