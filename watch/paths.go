package watch

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandFiles expands doublestar glob patterns to concrete files.
// Supports both single-level wildcards (*) and recursive wildcards (**).
// Plain paths pass through after an existence check. Results are
// deduplicated and sorted.
func ExpandFiles(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			// Not a glob hit: accept a literal path that exists.
			info, statErr := os.Stat(pattern)
			if statErr != nil {
				return nil, fmt.Errorf("no files match pattern: %s", pattern)
			}
			if !info.IsDir() {
				matches = []string{pattern}
			}
		}

		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
