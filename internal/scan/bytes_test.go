package scan

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{1073741824, "1.00 GB"},
		{1099511627776, "1.00 TB"},
		{1125899906842624, "1.00 PB"},
		// Beyond PB stays in PB, the last unit.
		{1125899906842624 * 1024, "1024.00 PB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.expected {
			t.Errorf("FormatBytes(%d) = %q, expected %q", tt.n, got, tt.expected)
		}
	}
}
