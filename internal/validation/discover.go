package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/klauern/agentsync/internal/logging"
)

// Discover expands glob patterns (with ** support) into a sorted, deduplicated
// list of regular files. Relative patterns resolve against baseDir; only the
// pattern is glob syntax, so metacharacters in baseDir match literally.
func Discover(baseDir string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := expand(baseDir, pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}

		found := 0
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			found++
			key := filepath.Clean(match)
			if abs, err := filepath.Abs(match); err == nil {
				key = abs
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			files = append(files, filepath.Clean(match))
		}

		if found == 0 {
			logging.Warn("no files matched pattern", logging.Pattern(pattern))
		}
	}

	sort.Strings(files)
	return files, nil
}

// expand globs one pattern. Relative patterns are matched inside an fs.FS
// rooted at baseDir and joined back onto it.
func expand(baseDir, pattern string) ([]string, error) {
	native := filepath.Clean(filepath.FromSlash(pattern))
	if filepath.IsAbs(native) || native == ".." || strings.HasPrefix(native, ".."+string(filepath.Separator)) {
		if !filepath.IsAbs(native) && baseDir != "" {
			native = filepath.Join(baseDir, native)
		}
		return doublestar.FilepathGlob(native)
	}

	root := baseDir
	if root == "" {
		root = "."
	}
	rel, err := doublestar.Glob(os.DirFS(root), filepath.ToSlash(native))
	if err != nil {
		return nil, err
	}
	matches := make([]string, 0, len(rel))
	for _, m := range rel {
		matches = append(matches, filepath.Join(root, filepath.FromSlash(m)))
	}
	return matches, nil
}
