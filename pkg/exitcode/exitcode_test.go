package exitcode

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{Success, "Success"},
		{GeneralError, "General error"},
		{InvalidRoot, "Invalid root directory"},
		{ValidationError, "Validation error"},
		{FileSystemError, "File system error"},
		{99, "Unknown error"},
	}

	for _, tt := range tests {
		if got := String(tt.code); got != tt.expected {
			t.Errorf("String(%d) = %q, expected %q", tt.code, got, tt.expected)
		}
	}
}

func TestCodeValues(t *testing.T) {
	// The scan contract promises 0 on success and 2 for a bad root.
	if Success != 0 {
		t.Errorf("Success = %d, expected 0", Success)
	}
	if GeneralError != 1 {
		t.Errorf("GeneralError = %d, expected 1", GeneralError)
	}
	if InvalidRoot != 2 {
		t.Errorf("InvalidRoot = %d, expected 2", InvalidRoot)
	}
}
