package folderhash

import (
	"slices"
	"strings"
)

// DuplicateGroup represents a group of files with the same hash
type DuplicateGroup struct {
	Hash  string   `json:"hash"`
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// FindDuplicates returns groups of files in result whose hashes are equal.
// Directories are ignored. Files within a group are sorted by relative path and
// groups are sorted by hash.
func FindDuplicates(result *HashResult) []DuplicateGroup {
	defer VerboseEnter()()

	if result == nil {
		return nil
	}

	duplicates := make(map[string][]string)
	result.Walk(func(relPath string, node *HashResult) bool {
		if node.IsDir() {
			return true
		}
		if relPath == "" {
			relPath = node.Name
		}
		duplicates[node.Hash] = append(duplicates[node.Hash], relPath)
		return true
	})

	// Remove entries with only one file
	var groups []DuplicateGroup
	for hash, files := range duplicates {
		if len(files) < 2 {
			continue
		}
		slices.Sort(files)
		groups = append(groups, DuplicateGroup{
			Hash:  hash,
			Files: files,
			Count: len(files),
		})
	}

	slices.SortFunc(groups, func(a, b DuplicateGroup) int {
		return strings.Compare(a.Hash, b.Hash)
	})

	VerboseLog(2, "found %d duplicate groups", len(groups))
	return groups
}
