package folderhash

import (
	"bytes"
	"strings"
)

// FileStatus represents the status of a node between two trees
type FileStatus int

const (
	StatusUnchanged FileStatus = iota
	StatusModified
	StatusAdded
	StatusRemoved
)

// String returns the one-letter code used in change listings
func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "M"
	case StatusAdded:
		return "A"
	case StatusRemoved:
		return "D"
	default:
		return " "
	}
}

// StatusEntry is one changed path
type StatusEntry struct {
	Path   string     `json:"path"`
	Status FileStatus `json:"status"`
}

// StatusResult represents the result of comparing two trees
type StatusResult struct {
	Modified  []string `json:"modified"`
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Unchanged int      `json:"unchanged"`

	entries []StatusEntry
}

// HasChanges returns true if any node was added, removed or modified
func (sr *StatusResult) HasChanges() bool {
	return sr.TotalChanges() > 0
}

// TotalChanges returns the number of changed paths
func (sr *StatusResult) TotalChanges() int {
	return len(sr.Modified) + len(sr.Added) + len(sr.Removed)
}

// Entries returns every change in tree order
func (sr *StatusResult) Entries() []StatusEntry {
	return append([]StatusEntry(nil), sr.entries...)
}

// Diff compares two hashed trees by relative path. An added or removed
// directory is reported once, without its contents. A directory whose hash
// differs is reported as modified only when no change below it explains the
// difference. Root names are not compared.
func Diff(before, after *HashResult) *StatusResult {
	defer VerboseEnter()()

	result := &StatusResult{
		Modified: make([]string, 0),
		Added:    make([]string, 0),
		Removed:  make([]string, 0),
	}
	if before == nil || after == nil {
		return result
	}

	if result.diffNode("", before, after) == 0 && before.Hash != after.Hash {
		result.add(".", StatusModified)
	}
	return result
}

func (sr *StatusResult) add(relPath string, status FileStatus) {
	switch status {
	case StatusModified:
		sr.Modified = append(sr.Modified, relPath)
	case StatusAdded:
		sr.Added = append(sr.Added, relPath)
	case StatusRemoved:
		sr.Removed = append(sr.Removed, relPath)
	}
	sr.entries = append(sr.entries, StatusEntry{Path: relPath, Status: status})
}

// diffNode compares the children of two nodes at the same path and returns the
// number of changes reported below them
func (sr *StatusResult) diffNode(relPath string, a, b *HashResult) int {
	if !a.IsDir() || !b.IsDir() {
		return 0
	}

	found := 0
	i, j := 0, 0
	for i < len(a.Children) || j < len(b.Children) {
		var cmp int
		switch {
		case i == len(a.Children):
			cmp = 1
		case j == len(b.Children):
			cmp = -1
		default:
			cmp = strings.Compare(a.Children[i].Name, b.Children[j].Name)
		}

		switch {
		case cmp < 0:
			sr.add(joinRel(relPath, a.Children[i].Name), StatusRemoved)
			found++
			i++
		case cmp > 0:
			sr.add(joinRel(relPath, b.Children[j].Name), StatusAdded)
			found++
			j++
		default:
			found += sr.diffChild(joinRel(relPath, a.Children[i].Name), a.Children[i], b.Children[j])
			i++
			j++
		}
	}
	return found
}

func (sr *StatusResult) diffChild(relPath string, a, b *HashResult) int {
	if a.IsDir() == b.IsDir() && sameHash(a, b) {
		sr.Unchanged += countNodes(a)
		return 0
	}

	if a.IsDir() && b.IsDir() {
		if n := sr.diffNode(relPath, a, b); n > 0 {
			return n
		}
	}

	sr.add(relPath, StatusModified)
	return 1
}

func sameHash(a, b *HashResult) bool {
	if a.digest != nil && b.digest != nil {
		return bytes.Equal(a.digest, b.digest)
	}
	return a.Hash == b.Hash
}

func countNodes(r *HashResult) int {
	n := 0
	r.Walk(func(string, *HashResult) bool {
		n++
		return true
	})
	return n
}

func joinRel(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
