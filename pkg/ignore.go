package folderhash

import (
	"bufio"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
)

// ExcludeMatcher decides which entries are left out of a traversal
type ExcludeMatcher struct {
	patterns []string
}

// NewExcludeMatcher validates patterns and returns a matcher for them
func NewExcludeMatcher(patterns []string) (*ExcludeMatcher, error) {
	em := &ExcludeMatcher{
		patterns: make([]string, 0, len(patterns)),
	}
	for _, pattern := range patterns {
		if err := em.AddPattern(pattern); err != nil {
			return nil, err
		}
	}
	return em, nil
}

// AddPattern validates and appends a glob pattern
func (em *ExcludeMatcher) AddPattern(pattern string) error {
	if err := ValidatePattern(pattern); err != nil {
		return err
	}
	em.patterns = append(em.patterns, filepath.ToSlash(pattern))
	return nil
}

// ValidatePattern checks that a string is a usable glob pattern
func ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return newHashError(KindInvalidOption, "exclude pattern", fmt.Errorf("empty pattern"))
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return newHashError(KindInvalidOption, pattern, fmt.Errorf("malformed glob pattern"))
	}
	return nil
}

// ShouldExclude reports whether an entry is excluded. relPath is tested
// as given and by its basename.
func (em *ExcludeMatcher) ShouldExclude(relPath string) bool {
	if len(em.patterns) == 0 {
		return false
	}

	// Normalise path separators to forward slashes for consistent pattern matching
	normalisedPath := strings.TrimPrefix(filepath.ToSlash(relPath), "./")
	baseName := path.Base(normalisedPath)

	for _, pattern := range em.patterns {
		// Patterns were validated when added, so the error is always nil
		if ok, _ := doublestar.Match(pattern, normalisedPath); ok {
			return true
		}
		if baseName != normalisedPath {
			if ok, _ := doublestar.Match(pattern, baseName); ok {
				return true
			}
		}
	}

	return false
}

// GetPatterns returns a copy of the patterns in order
func (em *ExcludeMatcher) GetPatterns() []string {
	return append([]string(nil), em.patterns...)
}

// HasPatterns returns true if there are any patterns
func (em *ExcludeMatcher) HasPatterns() bool {
	return len(em.patterns) > 0
}

// LoadExcludeFile reads glob patterns from a file, one per line. Blank lines and
// lines starting with # are skipped.
func LoadExcludeFile(fs billy.Filesystem, filename string) ([]string, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open exclude file: %w", err)
	}
	defer file.Close()

	var patterns []string
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := ValidatePattern(line); err != nil {
			return nil, fmt.Errorf("invalid pattern at line %d: %w", lineNum, err)
		}
		patterns = append(patterns, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading exclude file: %w", err)
	}

	return patterns, nil
}
