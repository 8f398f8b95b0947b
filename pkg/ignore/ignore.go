// Package ignore provides gitignore-based file filtering using go-git
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher provides gitignore-based file filtering
type Matcher struct {
	root    string
	matcher gitignore.Matcher
}

// NewMatcher creates a matcher with layered ignore files:
// 1. .gitignore and related git ignore files (foundation)
// 2. .whirlwindignore at the scan root (repo overrides)
// 3. ~/.whirlwind/.whirlwindignore (user overrides)
func NewMatcher(root string) (*Matcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	fs := osfs.New(absRoot)

	var allPatterns []gitignore.Pattern

	// Always ignored regardless of user patterns
	defaultPatterns := []string{".git/**"}
	for _, pattern := range defaultPatterns {
		allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
	}

	// Layer 1: standard gitignore patterns (.gitignore, global excludes, .git/info/exclude)
	if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
		allPatterns = append(allPatterns, gitPatterns...)
	}

	// Layer 2: .whirlwindignore at the scan root
	if patterns, err := readIgnoreFile(filepath.Join(absRoot, ".whirlwindignore")); err == nil {
		for _, pattern := range patterns {
			allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
		}
	}

	// Layer 3: user-level ~/.whirlwind/.whirlwindignore
	if homeDir, err := os.UserHomeDir(); err == nil {
		userIgnorePath := filepath.Join(homeDir, ".whirlwind", ".whirlwindignore")
		if patterns, err := readIgnoreFile(userIgnorePath); err == nil {
			for _, pattern := range patterns {
				allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
			}
		}
	}

	return &Matcher{
		root:    absRoot,
		matcher: gitignore.NewMatcher(allPatterns),
	}, nil
}

// readIgnoreFile reads patterns from a text file (like .whirlwindignore)
func readIgnoreFile(path string) ([]string, error) {
	cleaned := filepath.Clean(path)
	// Allowlist: only .whirlwindignore files are read here
	if !strings.HasSuffix(cleaned, string(os.PathSeparator)+".whirlwindignore") {
		return nil, fmt.Errorf("disallowed ignore file path: %s", cleaned)
	}
	content, err := os.ReadFile(cleaned) // #nosec G304 -- path cleaned and allowlisted
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}

	return patterns, nil
}

// IsIgnored checks if a file path should be ignored
func (m *Matcher) IsIgnored(path string) bool {
	return m.match(path, false)
}

// IsIgnoredDir checks if a directory should be ignored (and thus skipped during traversal)
func (m *Matcher) IsIgnoredDir(path string) bool {
	return m.match(path, true)
}

func (m *Matcher) match(path string, isDir bool) bool {
	// Callers hand over whatever WalkDir produced, which is relative when
	// the scan root was. Anchor it before computing the root-relative path,
	// or anchored patterns like tiles/*.tif silently stop matching.
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return false
		}
		path = abs
	}
	relPath, err := filepath.Rel(m.root, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	pathParts := splitPath(relPath)
	if len(pathParts) == 0 {
		return false
	}

	return m.matcher.Match(pathParts, isDir)
}

// splitPath converts a slash-separated path into components for go-git matching
func splitPath(path string) []string {
	if path == "" || path == "." {
		return []string{}
	}

	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}

	return result
}
