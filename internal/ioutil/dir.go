package ioutil

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ListDirectoryNormalized returns the sorted entry names of dir, which the
// caller must already have resolved through the policy. An optional glob
// pattern (doublestar syntax) filters by entry name.
func ListDirectoryNormalized(dir, pattern string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrInvalidPath
	}
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %q", pattern)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir error %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	if pattern != "" {
		filtered := names[:0]
		for _, name := range names {
			ok, merr := doublestar.Match(pattern, name)
			if merr != nil {
				return nil, merr
			}
			if ok {
				filtered = append(filtered, name)
			}
		}
		names = filtered
	}

	slices.Sort(names)
	return names, nil
}
