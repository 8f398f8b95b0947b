package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bluefractalfish/whirlwind/pkg/ignore"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Three directories (root plus two children), five files with sizes
// 10, 20, 30, 5, 100.
func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.tif"), 10)
	writeFile(t, filepath.Join(root, "b.tif"), 20)
	writeFile(t, filepath.Join(root, "tiles", "c.tif"), 30)
	writeFile(t, filepath.Join(root, "tiles", "d.txt"), 5)
	writeFile(t, filepath.Join(root, "ortho", "e.tif"), 100)
	return root
}

func TestScanCounts(t *testing.T) {
	root := buildTree(t)

	stats, err := Scan(context.Background(), root, Options{TopN: 2})
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}

	if stats.NumDirs != 3 {
		t.Errorf("NumDirs = %d, expected 3", stats.NumDirs)
	}
	if stats.NumFiles != 5 {
		t.Errorf("NumFiles = %d, expected 5", stats.NumFiles)
	}
	if stats.TotalBytes != 165 {
		t.Errorf("TotalBytes = %d, expected 165", stats.TotalBytes)
	}

	largest := stats.Largest()
	if len(largest) != 2 || largest[0].Size != 100 || largest[1].Size != 30 {
		t.Errorf("largest = %v, expected sizes [100, 30]", largest)
	}
}

func TestScanProgressPerDirectory(t *testing.T) {
	root := buildTree(t)

	var ticks []int
	_, err := Scan(context.Background(), root, Options{
		Progress: func(n int) { ticks = append(ticks, n) },
	})
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}

	// One tick per directory, not per file.
	if len(ticks) != 3 {
		t.Fatalf("got %d progress ticks, expected 3", len(ticks))
	}
	for i, n := range ticks {
		if n != i+1 {
			t.Errorf("tick %d reported %d dirs, expected %d", i, n, i+1)
		}
	}
}

func TestScanInvalidRoot(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "missing"), Options{})
	var invalid *InvalidRootError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRootError, got %v", err)
	}

	file := filepath.Join(t.TempDir(), "plain.txt")
	writeFile(t, file, 1)
	if _, err := Scan(context.Background(), file, Options{}); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRootError for non-directory root, got %v", err)
	}
}

func TestScanSkipsBrokenSymlink(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real.tif"), 42)
	if err := os.Symlink(filepath.Join(root, "gone.tif"), filepath.Join(root, "dangling")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	stats, err := Scan(context.Background(), root, Options{TopN: 10})
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	if stats.NumFiles != 1 {
		t.Errorf("NumFiles = %d, expected 1 (broken symlink skipped)", stats.NumFiles)
	}
	if stats.TotalBytes != 42 {
		t.Errorf("TotalBytes = %d, expected 42", stats.TotalBytes)
	}
}

func TestScanRespectsIgnores(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.tif"), 10)
	writeFile(t, filepath.Join(root, "scratch", "skip.tif"), 999)
	if err := os.WriteFile(filepath.Join(root, ".whirlwindignore"), []byte("scratch/\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := ignore.NewMatcher(root)
	if err != nil {
		t.Fatalf("NewMatcher() failed: %v", err)
	}

	stats, err := Scan(context.Background(), root, Options{TopN: 5, Ignores: m})
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	// keep.tif and the .whirlwindignore file itself.
	if stats.NumFiles != 2 {
		t.Errorf("NumFiles = %d, expected 2", stats.NumFiles)
	}
	if stats.NumDirs != 1 {
		t.Errorf("NumDirs = %d, expected 1 (scratch pruned)", stats.NumDirs)
	}
	for _, e := range stats.Largest() {
		if e.Size == 999 {
			t.Error("ignored file leaked into tracker")
		}
	}
}

func TestScanCancellation(t *testing.T) {
	root := buildTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Scan(ctx, root, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
