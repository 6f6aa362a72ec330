package source

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns matches the token document names extractors commonly emit.
var DefaultPatterns = []string{
	"**/tokens.json",
	"**/*.tokens.json",
	"**/design-tokens.json",
}

// DefaultExcludes skips dependency and build output directories.
var DefaultExcludes = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/dist/**",
	"**/build/**",
}

// Discover walks rootDir applying include/exclude globs. Empty slices fall
// back to DefaultPatterns and DefaultExcludes. Returns a sorted slice of
// absolute file paths for deterministic output.
func Discover(rootDir string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultPatterns
	}
	if len(exclude) == 0 {
		exclude = DefaultExcludes
	}

	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	var files []string

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking on errors.
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range exclude {
			matched, _ := doublestar.PathMatch(pattern, relPath)
			if matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		for _, pattern := range include {
			if m, _ := doublestar.PathMatch(pattern, relPath); m {
				files = append(files, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// IsTokenFile reports whether path matches any include pattern. Used by the
// watcher to filter filesystem events.
func IsTokenFile(path string, include []string) bool {
	if len(include) == 0 {
		include = DefaultPatterns
	}
	slashed := filepath.ToSlash(path)
	for _, pattern := range include {
		if m, _ := doublestar.PathMatch(pattern, slashed); m {
			return true
		}
		// Patterns are written relative to a root; also try the bare name.
		if m, _ := doublestar.PathMatch(pattern, filepath.Base(slashed)); m {
			return true
		}
	}
	return false
}
