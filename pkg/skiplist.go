package folderhash

import (
	"strings"
	"sync"

	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// childSet collects the finished children of one directory. Children may arrive
// in any order; iteration is always in byte-wise name order.
type childSet struct {
	mu       sync.Mutex
	skiplist *zcsl.ZeroCopySkiplist[HashResult, string, string]
}

// newChildSet creates an empty child set sized for roughly n entries
func newChildSet(n int) *childSet {
	maxLevels := 4
	for size := 16; size < n && maxLevels < 32; size *= 2 {
		maxLevels++
	}

	// Key extractor function - the basename is unique within a directory
	getKeyFromItem := func(node *HashResult) string {
		return node.Name
	}

	getItemSize := func(node *HashResult) int {
		return len(node.digest)
	}

	// Byte-wise comparison, independent of locale
	cmpKey := func(a, b string) int {
		return strings.Compare(a, b)
	}

	return &childSet{
		skiplist: zcsl.MakeZeroCopySkiplist[HashResult, string, string](
			maxLevels,
			getKeyFromItem,
			getItemSize,
			cmpKey,
		),
	}
}

// Insert adds a finished child; safe for concurrent use
func (cs *childSet) Insert(node *HashResult, kind EntryKind) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.skiplist.Insert(node, kind.String())
}

// Length returns the number of children
func (cs *childSet) Length() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.skiplist.Length()
}

// ForEach iterates through the children in canonical order
func (cs *childSet) ForEach(callback func(node *HashResult, kind string) bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for current := cs.skiplist.First(); current != nil; current = current.Next() {
		if !callback(current.Item(), current.Context()) {
			break
		}
	}
}

// Sorted returns the children in canonical order
func (cs *childSet) Sorted() []*HashResult {
	children := make([]*HashResult, 0, cs.Length())
	cs.ForEach(func(node *HashResult, _ string) bool {
		children = append(children, node)
		return true
	})
	return children
}
