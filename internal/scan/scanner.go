package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bluefractalfish/whirlwind/pkg/ignore"
)

// InvalidRootError reports a scan root that is missing or not a directory.
// It is surfaced to the user; no partial scan is attempted.
type InvalidRootError struct {
	Path string
}

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("not a directory: %s", e.Path)
}

// Options configures a scan.
type Options struct {
	// TopN bounds the largest-files tracker. 0 disables it.
	TopN int

	// Ignores filters files and subtrees when non-nil.
	Ignores *ignore.Matcher

	// Progress, when non-nil, receives the running directory count once
	// per directory visited. Purely observational.
	Progress func(numDirs int)
}

// Scan traverses root recursively and returns aggregate statistics.
// Traversal order is OS directory order; nothing is sorted. Per-file stat
// failures (permissions, deletion races, broken symlinks) skip the file
// silently: partial failures never abort the scan. Cancellation is checked
// at per-directory granularity.
func Scan(ctx context.Context, root string, opts Options) (*ScanStats, error) {
	st, err := os.Stat(root)
	if err != nil || !st.IsDir() {
		return nil, &InvalidRootError{Path: root}
	}

	stats := NewStats(opts.TopN)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory or vanished entry: best effort, move on.
			return nil
		}

		if d.IsDir() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if opts.Ignores != nil && path != root && opts.Ignores.IsIgnoredDir(path) {
				return fs.SkipDir
			}
			stats.NumDirs++
			if opts.Progress != nil {
				opts.Progress(stats.NumDirs)
			}
			return nil
		}

		if opts.Ignores != nil && opts.Ignores.IsIgnored(path) {
			return nil
		}

		// Follow symlinks the way a plain stat would; anything that fails
		// or is not a regular file contributes nothing.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		stats.AddFile(path, info.Size())
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return stats, nil
}
