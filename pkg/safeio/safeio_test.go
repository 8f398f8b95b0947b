package safeio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanUserPath(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"out/stage.csv", false},
		{"./stage.csv", false},
		{"../escape.csv", true},
		{"a/../../b", true},
	}
	for _, tt := range tests {
		_, err := CleanUserPath(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("CleanUserPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestWriteFilePreservePerms(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stage.csv")

	if err := WriteFilePreservePerms(path, []byte("a,b\n")); err != nil {
		t.Fatalf("initial write failed: %v", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Mode()&0o777 != 0o644 {
		t.Errorf("new file mode = %o, expected 0644", st.Mode()&0o777)
	}

	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if err := WriteFilePreservePerms(path, []byte("c,d\n")); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	st, err = os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Mode()&0o777 != 0o600 {
		t.Errorf("rewrite mode = %o, expected preserved 0600", st.Mode()&0o777)
	}
}
